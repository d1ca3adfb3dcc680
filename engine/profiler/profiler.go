package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, memory and GPU upload statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	uploadedBytes  uint64
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Sample
}

// Sample is one logged interval of profiler statistics.
type Sample struct {
	FPS          float64
	HeapMB       float64
	AllocRateMB  float64
	UploadKBps   float64
	UploadBytes  uint64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	IntervalSecs float64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		memStats:       runtime.MemStats{},
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, bytes uploaded to the GPU, GC count/pause times, total memory.
//
// Parameters:
//   - uploadedBytes: bytes written to GPU buffers during this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(uploadedBytes uint64) bool {
	p.frameCount++
	p.uploadedBytes += uploadedBytes
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	secs := elapsed.Seconds()
	s := Sample{
		FPS:          float64(p.frameCount) / secs,
		UploadBytes:  p.uploadedBytes,
		UploadKBps:   float64(p.uploadedBytes) / 1024 / secs,
		IntervalSecs: secs,
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / secs

	// Calculate GC pause stats (last pause and max recent pause)
	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | Upload: %.2f KB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.UploadKBps, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.frameCount = 0
	p.uploadedBytes = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recently logged sample.
//
// Returns:
//   - Sample: the last sample, zero before the first interval elapses
func (p *Profiler) Last() Sample {
	return p.last
}
