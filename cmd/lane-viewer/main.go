package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"lane-detector/internal/debug/timing"
	"lane-detector/internal/gui"
	"lane-detector/internal/logger"
	"lane-detector/internal/models"
	"lane-detector/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
)

const (
	AppName    = "Lane Viewer"
	AppID      = "com.imageprocessing.lane-viewer"
	AppVersion = "1.0.0"
)

func main() {
	workers := flag.Int("workers", models.DefaultMaxWorkers, "images processed concurrently")
	outDir := flag.String("out", "", "directory for saved edge maps (default: next to each image)")
	stdDecode := flag.Bool("std", false, "decode with the Go image packages instead of OpenCV")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: lane-viewer [flags] <image_path>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(level)

	log.Info("LaneViewer", "application starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"images":     flag.NArg(),
		"workers":    *workers,
	})

	config := models.NewPipelineConfiguration()
	config.SetMaxWorkers(*workers)

	var loader pipeline.ImageLoader = pipeline.NewOpenCVLoader(log)
	if *stdDecode {
		loader = pipeline.NewStdLoader(log)
	}

	tracker := timing.NewTracker()
	coordinator := pipeline.NewCoordinator(config, loader, log, tracker)

	results, err := pipeline.RunBatch(context.Background(), coordinator, flag.Args(), config.Settings().MaxWorkers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary := map[string]interface{}{"images": len(results)}
	for stage, durations := range tracker.GetAllTimings() {
		summary["avg_"+stage] = tracker.GetAverageTime(stage).String()
		summary["runs_"+stage] = len(durations)
	}
	log.Info("LaneViewer", "batch completed", summary)

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	view := gui.NewView(window, pipeline.NewImageSaver(log), *outDir)
	view.SetResults(results)

	window.SetContent(view.Content())
	window.Resize(fyne.NewSize(1280, 420))
	window.CenterOnScreen()
	window.ShowAndRun()
}
