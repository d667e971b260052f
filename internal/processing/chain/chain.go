package chain

import (
	"context"
	"fmt"
	"time"

	"lane-detector/internal/models"
)

// StepResult is the output of a single step plus any values it reports
type StepResult struct {
	Output *models.ImageBuffer
	Values map[string]interface{}
}

type ProcessingStep interface {
	Apply(ctx context.Context, input *models.ImageBuffer, params map[string]interface{}) (*StepResult, error)
	Name() string
	ShouldExecute(params map[string]interface{}) bool
}

// Stage records what one executed step produced
type Stage struct {
	Name    string
	Output  *models.ImageBuffer
	Values  map[string]interface{}
	Elapsed time.Duration
}

// Trace lists executed stages in order
type Trace struct {
	Stages []Stage
}

// Stage looks up an executed stage by name
func (t *Trace) Stage(name string) (Stage, bool) {
	for _, s := range t.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// StageFunc is told about each stage as soon as it finishes. A non-nil error
// stops the chain.
type StageFunc func(Stage) error

type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// Execute feeds input through every enabled step. Inputs are never modified;
// each stage output becomes the next stage input. observe may be nil.
func (pc *ProcessingChain) Execute(ctx context.Context, input *models.ImageBuffer, params map[string]interface{}, observe StageFunc) (*Trace, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: chain input is nil", models.ErrEmptyImage)
	}

	trace := &Trace{Stages: make([]Stage, 0, len(pc.steps))}
	current := input

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !step.ShouldExecute(params) {
			continue
		}

		start := time.Now()
		result, err := step.Apply(ctx, current, params)
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
		if result == nil || result.Output == nil {
			return nil, fmt.Errorf("step %s produced no image", step.Name())
		}

		stage := Stage{
			Name:    step.Name(),
			Output:  result.Output,
			Values:  result.Values,
			Elapsed: time.Since(start),
		}
		trace.Stages = append(trace.Stages, stage)
		current = result.Output

		if observe != nil {
			if err := observe(stage); err != nil {
				return nil, fmt.Errorf("after step %s: %w", step.Name(), err)
			}
		}
	}

	return trace, nil
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}
