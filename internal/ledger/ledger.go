// Package ledger is the append-only attendance store: a CSV file with a
// Name,Time header and one row per recognized identity.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"
)

// TimeFormat is the timestamp layout used in ledger rows.
const TimeFormat = "2006-01-02 15:04:05"

var header = []string{"Name", "Time"}

// Record is one attendance event.
type Record struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

// Ledger records an identity at most once per backing file. The file is the
// dedup window: pointing the ledger at a fresh path (for example one file
// per day) resets it. Rows are only ever appended; nothing updates or
// deletes them.
type Ledger struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Record appends (name, t) unless the name is already present. A missing
// file is bootstrapped with the header row. The first write wins; later
// calls for the same name are no-ops.
func (l *Ledger) Record(name string, t time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read()
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.Name == name {
			return nil
		}
	}

	fresh := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		fresh = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing ledger header: %w", err)
		}
	}
	if err := w.Write([]string{name, t.Format(TimeFormat)}); err != nil {
		return fmt.Errorf("writing ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// List returns all records in file order. A missing ledger is an empty
// ledger, not an error.
func (l *Ledger) List() ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *Ledger) read() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var records []Record
	for i, row := range rows {
		if i == 0 && row[0] == header[0] && row[1] == header[1] {
			continue
		}
		records = append(records, Record{Name: row[0], Time: row[1]})
	}
	return records, nil
}
