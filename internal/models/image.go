package models

import (
	"fmt"
	"image"
	"image/color"
)

// ImageBuffer is a single-channel 8-bit image stored as a flat row-major
// sample slice. A buffer handed out by a pipeline stage is never modified
// afterwards.
type ImageBuffer struct {
	width   int
	height  int
	samples []uint8
}

// NewImageBuffer allocates a zeroed buffer of the given size
func NewImageBuffer(width, height int) (*ImageBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	return &ImageBuffer{
		width:   width,
		height:  height,
		samples: make([]uint8, width*height),
	}, nil
}

// NewImageBufferFromSamples copies samples into a new buffer
func NewImageBufferFromSamples(width, height int, samples []uint8) (*ImageBuffer, error) {
	buf, err := NewImageBuffer(width, height)
	if err != nil {
		return nil, err
	}

	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: got %d, want %d for %dx%d",
			ErrSampleCount, len(samples), width*height, width, height)
	}

	copy(buf.samples, samples)
	return buf, nil
}

// NewImageBufferFromRows builds a buffer from equally sized rows
func NewImageBufferFromRows(rows [][]uint8) (*ImageBuffer, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimension)
	}

	height := len(rows)
	width := len(rows[0])
	samples := make([]uint8, 0, width*height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d",
				ErrSampleCount, y, len(row), width)
		}
		samples = append(samples, row...)
	}

	return NewImageBufferFromSamples(width, height, samples)
}

// FromImage converts any image to luminance using the standard gray model
func FromImage(img image.Image) (*ImageBuffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEmptyImage)
	}

	bounds := img.Bounds()
	buf, err := NewImageBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < buf.height; y++ {
			start := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.samples[y*buf.width:(y+1)*buf.width], gray.Pix[start:start+buf.width])
		}
		return buf, nil
	}

	for y := 0; y < buf.height; y++ {
		for x := 0; x < buf.width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			buf.samples[y*buf.width+x] = c.Y
		}
	}

	return buf, nil
}

func (b *ImageBuffer) Width() int {
	return b.width
}

func (b *ImageBuffer) Height() int {
	return b.height
}

// Len returns the number of samples
func (b *ImageBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.samples)
}

// At returns the sample at column x, row y. Out of range coordinates panic
// like any slice access.
func (b *ImageBuffer) At(x, y int) uint8 {
	return b.samples[y*b.width+x]
}

// Set is only meant for the stage that allocated the buffer
func (b *ImageBuffer) Set(x, y int, value uint8) {
	b.samples[y*b.width+x] = value
}

// Samples returns a copy of the row-major samples
func (b *ImageBuffer) Samples() []uint8 {
	out := make([]uint8, len(b.samples))
	copy(out, b.samples)
	return out
}

// Row returns a read-only view of row y
func (b *ImageBuffer) Row(y int) []uint8 {
	return b.samples[y*b.width : (y+1)*b.width : (y+1)*b.width]
}

// Rows returns a nested copy, one slice per row
func (b *ImageBuffer) Rows() [][]uint8 {
	rows := make([][]uint8, b.height)
	for y := range rows {
		rows[y] = append([]uint8(nil), b.Row(y)...)
	}
	return rows
}

func (b *ImageBuffer) Equal(other *ImageBuffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i, v := range b.samples {
		if other.samples[i] != v {
			return false
		}
	}
	return true
}

// ToGray copies the buffer into an image.Gray anchored at the origin
func (b *ImageBuffer) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.samples)
	return img
}

func (b *ImageBuffer) String() string {
	return fmt.Sprintf("ImageBuffer(%dx%d)", b.width, b.height)
}
