package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os/signal"
	"syscall"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/recognize"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize",
	Short: "Run headless recognition against the camera",
	Long: `Recognize watches the camera and marks every recognized person
present in the attendance ledger. Matches are printed as they happen.
Stop with Ctrl+C.`,
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := recognize.New(p.detector, p.recognizer, p.registry, p.ledger, cfg.Vision.Threshold)

	fmt.Println("Watching camera, Ctrl+C to stop")
	seen := make(map[string]struct{})
	err = loop.Run(ctx, src, func(annotated *image.RGBA, matches []recognize.Match) error {
		for _, m := range matches {
			if _, ok := seen[m.Identity]; ok {
				continue
			}
			seen[m.Identity] = struct{}{}
			fmt.Printf("Recognized %s (distance %.1f)\n", m.Identity, m.Distance)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
