package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(time.Second), WithClock(func() time.Time { return now }))

	for range 9 {
		now = now.Add(100 * time.Millisecond)
		assert.False(t, p.Tick(512))
	}
	now = now.Add(100 * time.Millisecond)
	assert.True(t, p.Tick(512))

	s := p.Last()
	assert.InDelta(t, 10.0, s.FPS, 1e-9)
	assert.Equal(t, uint64(5120), s.UploadBytes)
	assert.InDelta(t, 5.0, s.UploadKBps, 1e-9)

	// Counters reset after logging.
	now = now.Add(time.Second)
	assert.True(t, p.Tick(0))
	assert.Equal(t, uint64(0), p.Last().UploadBytes)
	assert.InDelta(t, 1.0, p.Last().FPS, 1e-9)
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
