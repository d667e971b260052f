package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lane-detector/internal/models"
)

func TestCompute(t *testing.T) {
	img, err := models.NewImageBufferFromSamples(3, 2, []uint8{5, 5, 200, 7, 5, 200})
	require.NoError(t, err)

	h, err := Compute(img)
	require.NoError(t, err)

	assert.Equal(t, 3, h[5])
	assert.Equal(t, 1, h[7])
	assert.Equal(t, 2, h[200])
	assert.Equal(t, 6, h.Total())

	lo, ok := h.Min()
	require.True(t, ok)
	assert.Equal(t, uint8(5), lo)

	hi, ok := h.Max()
	require.True(t, ok)
	assert.Equal(t, uint8(200), hi)
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil)
	require.ErrorIs(t, err, models.ErrEmptyImage)

	var h Histogram
	_, ok := h.Min()
	assert.False(t, ok)
	_, ok = h.Max()
	assert.False(t, ok)
}
