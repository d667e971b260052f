package models

import (
	"fmt"
	"sync"
)

const (
	DefaultTargetWidth  = 100
	DefaultTargetHeight = 50
	DefaultRenderCutoff = 128
	DefaultMaxWorkers   = 4
)

// PipelineSettings is a snapshot of the pipeline configuration
type PipelineSettings struct {
	TargetWidth  int
	TargetHeight int
	// RenderCutoff is the sample value a pixel must exceed to be drawn
	RenderCutoff uint8
	MaxWorkers   int
}

// PipelineConfiguration manages pipeline settings
type PipelineConfiguration struct {
	mu       sync.RWMutex
	settings PipelineSettings
}

// NewPipelineConfiguration creates a configuration with the default settings
func NewPipelineConfiguration() *PipelineConfiguration {
	return &PipelineConfiguration{
		settings: PipelineSettings{
			TargetWidth:  DefaultTargetWidth,
			TargetHeight: DefaultTargetHeight,
			RenderCutoff: DefaultRenderCutoff,
			MaxWorkers:   DefaultMaxWorkers,
		},
	}
}

// Settings returns a copy of the current settings
func (pc *PipelineConfiguration) Settings() PipelineSettings {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.settings
}

// SetTargetSize changes the resize target
func (pc *PipelineConfiguration) SetTargetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidDimension, width, height)
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.settings.TargetWidth = width
	pc.settings.TargetHeight = height
	return nil
}

// SetMaxWorkers changes the batch concurrency limit, values below one mean one
func (pc *PipelineConfiguration) SetMaxWorkers(workers int) {
	if workers < 1 {
		workers = 1
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.settings.MaxWorkers = workers
}

// Validate checks that the settings describe a runnable pipeline
func (s PipelineSettings) Validate() error {
	if s.TargetWidth <= 0 || s.TargetHeight <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidDimension, s.TargetWidth, s.TargetHeight)
	}
	if s.MaxWorkers <= 0 {
		return fmt.Errorf("max workers must be positive, got %d", s.MaxWorkers)
	}
	return nil
}
