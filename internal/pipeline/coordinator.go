package pipeline

import (
	"context"
	"fmt"
	"time"

	"lane-detector/internal/models"
	"lane-detector/internal/processing/chain"
	"lane-detector/internal/processing/filters"
	"lane-detector/internal/processing/threshold"
)

const (
	StageDecode   = "decode"
	StageResize   = "resize"
	StageBinarize = "binarize"
	StageEdges    = "edges"
)

// Result holds every intermediate image of one pipeline run
type Result struct {
	Path      string
	Original  *models.ImageBuffer
	Resized   *models.ImageBuffer
	Threshold uint8
	Binary    *models.ImageBuffer
	Edges     *models.ImageBuffer
	Timings   map[string]time.Duration
}

// Coordinator runs decode, resize, threshold selection, binarization and
// edge detection for one image at a time. It keeps no per-image state, so a
// single Coordinator may serve concurrent runs.
type Coordinator struct {
	config *models.PipelineConfiguration
	loader ImageLoader
	chain  *chain.ProcessingChain
	logger Logger
	timing TimingTracker
}

func NewCoordinator(config *models.PipelineConfiguration, loader ImageLoader, log Logger, timing TimingTracker) *Coordinator {
	return &Coordinator{
		config: config,
		loader: loader,
		chain: chain.NewProcessingChain([]chain.ProcessingStep{
			filters.NewResizeStep(),
			threshold.NewBinarizeStep(),
			filters.NewEdgeStep(),
		}),
		logger: log,
		timing: timing,
	}
}

// Event reports one finished stage of a run
type Event struct {
	Stage     string
	Output    *models.ImageBuffer
	Threshold uint8 // StageBinarize only
}

// ProgressFunc receives events in stage order. An error aborts the run.
type ProgressFunc func(Event) error

// Run decodes the image at path and processes it
func (c *Coordinator) Run(ctx context.Context, path string) (*Result, error) {
	return c.RunWithProgress(ctx, path, nil)
}

// RunWithProgress is Run with progress reported after decoding and after
// each pixel stage. progress may be nil.
func (c *Coordinator) RunWithProgress(ctx context.Context, path string, progress ProgressFunc) (*Result, error) {
	decodeCtx := c.timing.StartTiming(StageDecode)
	img, err := c.loader.Load(ctx, path)
	decodeTime := c.timing.EndTiming(decodeCtx)
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"path":    path,
			"decoder": c.loader.Name(),
		})
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	c.logger.Info("Coordinator", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  img.Width(),
		"height": img.Height(),
	})

	if progress != nil {
		if err := progress(Event{Stage: StageDecode, Output: img}); err != nil {
			return nil, err
		}
	}

	result, err := c.process(ctx, img, progress)
	if err != nil {
		return nil, err
	}

	result.Path = path
	result.Timings[StageDecode] = decodeTime
	return result, nil
}

// Process runs the pixel stages on an already decoded image
func (c *Coordinator) Process(ctx context.Context, img *models.ImageBuffer) (*Result, error) {
	return c.process(ctx, img, nil)
}

func (c *Coordinator) process(ctx context.Context, img *models.ImageBuffer, progress ProgressFunc) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image to process", models.ErrEmptyImage)
	}

	settings := c.config.Settings()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	params := map[string]interface{}{
		filters.ParamTargetWidth:  settings.TargetWidth,
		filters.ParamTargetHeight: settings.TargetHeight,
	}

	var observe chain.StageFunc
	if progress != nil {
		observe = func(stage chain.Stage) error {
			event := Event{Stage: stage.Name, Output: stage.Output}
			event.Threshold, _ = stage.Values[threshold.ParamThreshold].(uint8)
			return progress(event)
		}
	}

	trace, err := c.chain.Execute(ctx, img, params, observe)
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"width":  img.Width(),
			"height": img.Height(),
		})
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}

	result := &Result{
		Original: img,
		Timings:  make(map[string]time.Duration, len(trace.Stages)+1),
	}

	for _, stage := range trace.Stages {
		c.timing.Record(stage.Name, stage.Elapsed)
		result.Timings[stage.Name] = stage.Elapsed

		c.logger.Debug("Coordinator", "stage completed", map[string]interface{}{
			"stage":    stage.Name,
			"width":    stage.Output.Width(),
			"height":   stage.Output.Height(),
			"duration": stage.Elapsed.String(),
		})
	}

	resized, okResize := trace.Stage(StageResize)
	binary, okBinary := trace.Stage(StageBinarize)
	edges, okEdges := trace.Stage(StageEdges)
	if !okResize || !okBinary || !okEdges {
		return nil, fmt.Errorf("pipeline incomplete: ran %d of %d stages", len(trace.Stages), c.chain.StepCount())
	}

	result.Resized = resized.Output
	result.Binary = binary.Output
	result.Threshold, _ = binary.Values[threshold.ParamThreshold].(uint8)
	result.Edges = edges.Output

	c.logger.Info("Coordinator", "pipeline completed", map[string]interface{}{
		"resized_width":  result.Resized.Width(),
		"resized_height": result.Resized.Height(),
		"threshold":      result.Threshold,
	})

	return result, nil
}
