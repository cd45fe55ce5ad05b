package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the face recognition model from the dataset",
	Long: `Train rebuilds the LBPH face recognition model from every sample in
the dataset directory and writes the model and label registry to disk.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, err := newPipeline(cfg, false)
	if err != nil {
		return err
	}
	defer p.Close()

	identities, err := p.store.Identities()
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	fmt.Printf("Training on %d identities from %s\n", len(identities), cfg.Storage.DatasetDir)

	var bar *progressbar.ProgressBar
	p.trainer.OnProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Training faces"),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString("samples"),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionFullWidth(),
			)
		}
		_ = bar.Set(done)
	})

	if err := p.trainer.Train(); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Printf("\nModel written to %s, labels to %s\n", cfg.Storage.ModelPath, cfg.Storage.LabelsPath)
	return nil
}
