package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartEndTiming(t *testing.T) {
	tt := NewTracker()

	ctx := tt.StartTiming("decode")
	d := tt.EndTiming(ctx)

	got := tt.GetTimings("decode")
	require.Len(t, got, 1)
	assert.Equal(t, d, got[0])
	assert.Nil(t, tt.GetTimings("missing"))
}

func TestEndTimingIgnoresForeignContext(t *testing.T) {
	tt := NewTracker()
	assert.Zero(t, tt.EndTiming(context.Background()))
	assert.Empty(t, tt.GetAllTimings())
}

func TestAverageAndAllTimings(t *testing.T) {
	tt := NewTracker()
	tt.Record("resize", 2*time.Millisecond)
	tt.Record("resize", 4*time.Millisecond)
	tt.Record("edges", time.Millisecond)

	assert.Equal(t, 3*time.Millisecond, tt.GetAverageTime("resize"))
	assert.Zero(t, tt.GetAverageTime("missing"))

	all := tt.GetAllTimings()
	require.Len(t, all, 2)
	assert.Equal(t, []time.Duration{2 * time.Millisecond, 4 * time.Millisecond}, all["resize"])

	all["resize"][0] = time.Hour
	assert.Equal(t, 2*time.Millisecond, tt.GetTimings("resize")[0])
}
