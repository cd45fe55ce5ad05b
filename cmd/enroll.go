package cmd

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/enroll"
	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll [name]",
	Short: "Capture face samples for a person and retrain",
	Long: `Enroll captures frames from the camera, stores them as training
samples for the named person and retrains the model after each capture.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)

	enrollCmd.Flags().Int("count", 1, "Number of samples to capture")
}

func runEnroll(cmd *cobra.Command, args []string) error {
	name := identity.Normalize(args[0])
	if name == "" {
		return errors.New("a non-empty name is required")
	}
	count := mustGetInt(cmd, "count")
	if count < 1 {
		return errors.New("--count must be at least 1")
	}

	cfg := config.Load()

	p, err := newPipeline(cfg, true)
	if err != nil {
		return err
	}
	defer p.Close()

	src, err := cameraOpener(cfg)()
	if err != nil {
		return fmt.Errorf("opening camera: %w", err)
	}
	defer src.Close()

	capturer := enroll.New(p.store, p.trainer)

	captured := 0
	for i := 0; i < count; i++ {
		sample, err := capturer.CaptureSample(src, name)
		if err != nil {
			return fmt.Errorf("capturing sample %d: %w", i+1, err)
		}
		if sample == "" {
			fmt.Println("Camera yielded no frame, stopping")
			break
		}
		captured++
		fmt.Printf("Captured %s\n", sample)
	}

	fmt.Printf("Enrolled %d samples for %s\n", captured, identity.Display(name))
	return nil
}
