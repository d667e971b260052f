package pipeline

import (
	"context"
	"time"

	"lane-detector/internal/models"
)

// Logger is the subset of the structured logger the pipeline needs
type Logger interface {
	Debug(component string, message string, fields map[string]interface{})
	Info(component string, message string, fields map[string]interface{})
	Warning(component string, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
	Record(operation string, duration time.Duration)
}

// ImageLoader decodes an image file into a grayscale buffer
type ImageLoader interface {
	Load(ctx context.Context, path string) (*models.ImageBuffer, error)
	Name() string
}
