package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Print the attendance ledger",
	RunE:  runAttendance,
}

func init() {
	rootCmd.AddCommand(attendanceCmd)
}

func runAttendance(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	records, err := ledger.New(cfg.Storage.LedgerPath).List()
	if err != nil {
		return fmt.Errorf("reading attendance ledger: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No attendance records yet")
		return nil
	}

	fmt.Printf("%-30s %s\n", "Name", "Time")
	for _, r := range records {
		fmt.Printf("%-30s %s\n", identity.Display(r.Name), r.Time)
	}
	fmt.Printf("\nTotal: %d\n", len(records))
	return nil
}
