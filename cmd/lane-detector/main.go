package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"lane-detector/internal/debug/timing"
	"lane-detector/internal/logger"
	"lane-detector/internal/models"
	"lane-detector/internal/pipeline"

	"github.com/rs/zerolog"
)

const usage = "Usage: lane-detector <image_path>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewConsoleLogger(zerolog.WarnLevel)
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, log))
}

// run returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, log logger.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	path := args[0]

	if err := pipeline.CheckExists(path); err != nil {
		fmt.Fprintf(stderr, "Error: The file '%s' does not exist.\n", path)
		return 1
	}

	config := models.NewPipelineConfiguration()
	coordinator := pipeline.NewCoordinator(config, pipeline.NewOpenCVLoader(log), log, timing.NewTracker())

	renderer := pipeline.NewRenderer(config.Settings().RenderCutoff)

	fmt.Fprintln(stdout, "Reading the image...")
	result, err := coordinator.RunWithProgress(ctx, path, func(e pipeline.Event) error {
		return report(stdout, e, renderer)
	})
	if err != nil {
		if errors.Is(err, models.ErrFileNotFound) {
			fmt.Fprintf(stderr, "Error: The file '%s' does not exist.\n", path)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	fmt.Fprintln(stdout, "Detected Lanes:")
	if err := renderer.Render(stdout, result.Edges); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// report prints each stage as it finishes. Sizes are height x width.
func report(w io.Writer, e pipeline.Event, renderer *pipeline.Renderer) error {
	switch e.Stage {
	case pipeline.StageDecode:
		fmt.Fprintf(w, "Image size: %dx%d\n", e.Output.Height(), e.Output.Width())
	case pipeline.StageResize:
		fmt.Fprintf(w, "Resized image size: %dx%d\n", e.Output.Height(), e.Output.Width())
	case pipeline.StageBinarize:
		fmt.Fprintf(w, "Using dynamic threshold: %d\n", e.Threshold)
		fmt.Fprintln(w, "Binary image (thresholded):")
		return renderer.Render(w, e.Output)
	case pipeline.StageEdges:
		fmt.Fprintln(w, "Edges detected:")
		return renderer.Render(w, e.Output)
	}
	return nil
}
