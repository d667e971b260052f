package threshold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lane-detector/internal/models"
)

func buffer(t *testing.T, w, h int, samples ...uint8) *models.ImageBuffer {
	t.Helper()
	buf, err := models.NewImageBufferFromSamples(w, h, samples)
	require.NoError(t, err)
	return buf
}

func TestSelectThreshold(t *testing.T) {
	for _, tc := range []struct {
		name string
		img  *models.ImageBuffer
		want uint8
	}{
		{"constant", buffer(t, 2, 2, 42, 42, 42, 42), 42},
		{"constant zero", buffer(t, 1, 1, 0), 0},
		{"constant white", buffer(t, 1, 1, 255), 255},
		{"black and white", buffer(t, 2, 2, 0, 255, 255, 0), 127},
		{"truncating midpoint", buffer(t, 3, 1, 10, 20, 13), 15},
		{"odd sum", buffer(t, 2, 1, 3, 4), 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectThreshold(tc.img)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSelectThresholdEmpty(t *testing.T) {
	_, err := SelectThreshold(nil)
	require.ErrorIs(t, err, models.ErrEmptyImage)
}

func TestBinarizeTieGoesBlack(t *testing.T) {
	src := buffer(t, 5, 1, 0, 99, 100, 101, 255)

	got, err := Binarize(src, 100)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 255, 255}, got.Samples())
	assert.Equal(t, []uint8{0, 99, 100, 101, 255}, src.Samples())
}

func TestBinarizeOnlyTwoLevels(t *testing.T) {
	samples := make([]uint8, 256)
	for i := range samples {
		samples[i] = uint8(i)
	}
	src := buffer(t, 16, 16, samples...)

	for _, th := range []uint8{0, 1, 127, 128, 254, 255} {
		got, err := Binarize(src, th)
		require.NoError(t, err)
		for i, v := range got.Samples() {
			if samples[i] > th {
				require.Equal(t, White, v, "sample %d threshold %d", samples[i], th)
			} else {
				require.Equal(t, Black, v, "sample %d threshold %d", samples[i], th)
			}
		}
	}
}

func TestBinarizeUniformImageIsValid(t *testing.T) {
	src := buffer(t, 2, 2, 9, 9, 9, 9)
	th, err := SelectThreshold(src)
	require.NoError(t, err)

	got, err := Binarize(src, th)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 0}, got.Samples())
}

func TestBinarizeStep(t *testing.T) {
	step := NewBinarizeStep()
	src := buffer(t, 3, 1, 10, 50, 90)

	res, err := step.Apply(context.Background(), src, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, uint8(50), res.Values[ParamThreshold])
	assert.Equal(t, []uint8{0, 0, 255}, res.Output.Samples())

	res, err = step.Apply(context.Background(), src, map[string]interface{}{ParamThreshold: uint8(5)})
	require.NoError(t, err)
	assert.Equal(t, true, res.Values["fixed"])
	assert.Equal(t, []uint8{255, 255, 255}, res.Output.Samples())
}
