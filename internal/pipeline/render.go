package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"lane-detector/internal/models"
)

const (
	GlyphOn  = '█'
	GlyphOff = ' '
)

// Renderer writes images as text, one line per row
type Renderer struct {
	cutoff uint8
}

// NewRenderer draws GlyphOn for samples above cutoff and GlyphOff otherwise
func NewRenderer(cutoff uint8) *Renderer {
	return &Renderer{cutoff: cutoff}
}

func (r *Renderer) Render(w io.Writer, img *models.ImageBuffer) error {
	if img == nil {
		return fmt.Errorf("%w: nothing to render", models.ErrEmptyImage)
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < img.Height(); y++ {
		for _, v := range img.Row(y) {
			if v > r.cutoff {
				bw.WriteRune(GlyphOn)
			} else {
				bw.WriteRune(GlyphOff)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
