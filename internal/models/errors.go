package models

import "errors"

var (
	// ErrInvalidDimension reports a non-positive width or height
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrEmptyImage reports an image without samples
	ErrEmptyImage = errors.New("empty image")
	// ErrFileNotFound reports a missing input path
	ErrFileNotFound = errors.New("file not found")
	// ErrSampleCount reports a sample slice that does not match the dimensions
	ErrSampleCount = errors.New("sample count mismatch")
)
