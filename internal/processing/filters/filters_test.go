package filters

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lane-detector/internal/models"
)

func mustBuffer(t *testing.T, rows [][]uint8) *models.ImageBuffer {
	t.Helper()
	buf, err := models.NewImageBufferFromRows(rows)
	require.NoError(t, err)
	return buf
}

func uniform(t *testing.T, w, h int, v uint8) *models.ImageBuffer {
	t.Helper()
	samples := make([]uint8, w*h)
	for i := range samples {
		samples[i] = v
	}
	buf, err := models.NewImageBufferFromSamples(w, h, samples)
	require.NoError(t, err)
	return buf
}

func TestResizeUpsampleTwoByTwo(t *testing.T) {
	src := mustBuffer(t, [][]uint8{
		{0, 100},
		{200, 255},
	})

	got, err := Resize(src, 4, 4)
	require.NoError(t, err)

	want := [][]uint8{
		{0, 0, 100, 100},
		{0, 0, 100, 100},
		{200, 200, 255, 255},
		{200, 200, 255, 255},
	}
	if diff := cmp.Diff(want, got.Rows()); diff != "" {
		t.Errorf("Resize mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeDownsampleTruncates(t *testing.T) {
	src := mustBuffer(t, [][]uint8{
		{1, 2, 3, 4, 5},
		{6, 7, 8, 9, 10},
		{11, 12, 13, 14, 15},
	})

	got, err := Resize(src, 2, 2)
	require.NoError(t, err)

	// rows 0*3/2=0, 1*3/2=1; columns 0*5/2=0, 1*5/2=2
	want := [][]uint8{
		{1, 3},
		{6, 8},
	}
	if diff := cmp.Diff(want, got.Rows()); diff != "" {
		t.Errorf("Resize mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeSameSizeIsIdentity(t *testing.T) {
	src := mustBuffer(t, [][]uint8{
		{9, 8, 7},
		{6, 5, 4},
	})

	got, err := Resize(src, 3, 2)
	require.NoError(t, err)
	assert.True(t, src.Equal(got))
	assert.NotSame(t, src, got)
}

func TestResizeIdempotent(t *testing.T) {
	samples := make([]uint8, 37*23)
	for i := range samples {
		samples[i] = uint8(i * 7)
	}
	src, err := models.NewImageBufferFromSamples(37, 23, samples)
	require.NoError(t, err)

	once, err := Resize(src, 10, 5)
	require.NoError(t, err)
	twice, err := Resize(once, 10, 5)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

func TestResizeInvalidTarget(t *testing.T) {
	src := uniform(t, 2, 2, 1)
	for _, tc := range []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -1, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resize(src, tc.w, tc.h)
			require.ErrorIs(t, err, models.ErrInvalidDimension)
		})
	}

	_, err := Resize(nil, 2, 2)
	require.ErrorIs(t, err, models.ErrInvalidDimension)
}

func TestDetectEdgesConstantImages(t *testing.T) {
	for _, v := range []uint8{0, 255} {
		src := uniform(t, 6, 5, v)
		got, err := DetectEdges(src)
		require.NoError(t, err)
		assert.True(t, uniform(t, 6, 5, 0).Equal(got), "constant %d should have no gradient", v)
	}
}

func TestDetectEdgesVerticalStep(t *testing.T) {
	src := mustBuffer(t, [][]uint8{
		{0, 0, 10, 10},
		{0, 0, 10, 10},
		{0, 0, 10, 10},
	})

	got, err := DetectEdges(src)
	require.NoError(t, err)

	want := [][]uint8{
		{0, 0, 0, 0},
		{0, 40, 40, 0},
		{0, 0, 0, 0},
	}
	if diff := cmp.Diff(want, got.Rows()); diff != "" {
		t.Errorf("DetectEdges mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectEdgesClampsTo255(t *testing.T) {
	src := mustBuffer(t, [][]uint8{
		{0, 0, 255, 255},
		{0, 0, 255, 255},
		{0, 0, 255, 255},
	})

	got, err := DetectEdges(src)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got.At(1, 1))
	assert.Equal(t, uint8(255), got.At(2, 1))
}

func TestDetectEdgesTruncatesMagnitude(t *testing.T) {
	// gx = gy = 12 at the center, sqrt(288) = 16.97
	src := mustBuffer(t, [][]uint8{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 12},
	})

	got, err := DetectEdges(src)
	require.NoError(t, err)
	assert.Equal(t, uint8(16), got.At(1, 1))
}

func TestDetectEdgesBorderStaysZero(t *testing.T) {
	samples := make([]uint8, 7*6)
	for i := range samples {
		samples[i] = uint8((i * 97) % 256)
	}
	src, err := models.NewImageBufferFromSamples(7, 6, samples)
	require.NoError(t, err)

	got, err := DetectEdges(src)
	require.NoError(t, err)
	require.Equal(t, 7, got.Width())
	require.Equal(t, 6, got.Height())

	for x := 0; x < 7; x++ {
		assert.Zero(t, got.At(x, 0))
		assert.Zero(t, got.At(x, 5))
	}
	for y := 0; y < 6; y++ {
		assert.Zero(t, got.At(0, y))
		assert.Zero(t, got.At(6, y))
	}
}

func TestDetectEdgesTinyImages(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 5}, {5, 2}} {
		src := uniform(t, size[0], size[1], 200)
		got, err := DetectEdges(src)
		require.NoError(t, err)
		assert.True(t, uniform(t, size[0], size[1], 0).Equal(got))
	}
}

func TestDetectEdgesDoesNotModifyInput(t *testing.T) {
	src := mustBuffer(t, [][]uint8{
		{0, 0, 255},
		{0, 0, 255},
		{0, 0, 255},
	})
	before := src.Samples()

	_, err := DetectEdges(src)
	require.NoError(t, err)
	assert.Equal(t, before, src.Samples())
}

func TestResizeStepReadsParams(t *testing.T) {
	step := NewResizeStep()
	params := map[string]interface{}{ParamTargetWidth: 4, ParamTargetHeight: 2}
	require.True(t, step.ShouldExecute(params))
	assert.False(t, step.ShouldExecute(map[string]interface{}{}))

	res, err := step.Apply(context.Background(), uniform(t, 2, 2, 3), params)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Output.Width())
	assert.Equal(t, 2, res.Output.Height())
	assert.Equal(t, 2, res.Values["source_width"])
}

func TestStepsHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEdgeStep().Apply(ctx, uniform(t, 3, 3, 0), nil)
	require.ErrorIs(t, err, context.Canceled)
}
