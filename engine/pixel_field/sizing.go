package pixel_field

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-pixels/common"
	"github.com/Carmen-Shannon/oxy-pixels/engine/pixel_group"
)

// ClampedSize returns the side length of a pixel, capped so it never spans more than maxFootprintPx
// device pixels on screen.
//
// The visible world height at depth z is 2*tan(fov/2)*(zoom - z/distanceOffset). The result is
// min(pixelSize, maxFootprintPx/viewportHeightPx*worldHeight), and 0 when the depth lies at or
// behind the camera.
//
// Parameters:
//   - fovDegrees: the vertical field of view
//   - zoom: the camera distance from the image plane
//   - depthZ: the mean world z of the batch
//   - distanceOffset: the depth weakening constant
//   - maxFootprintPx: the on-screen cap in device pixels
//   - viewportHeightPx: the drawable height in device pixels
//   - pixelSize: the nominal pixel size
//
// Returns:
//   - float64: the clamped size
func ClampedSize(fovDegrees, zoom, depthZ, distanceOffset, maxFootprintPx float64, viewportHeightPx int, pixelSize float64) float64 {
	fovRad := fovDegrees * math.Pi / 180
	worldHeight := 2 * math.Tan(fovRad/2) * (zoom - depthZ/distanceOffset)
	if worldHeight <= 0 {
		return 0
	}
	maxWorld := maxFootprintPx / float64(viewportHeightPx) * worldHeight
	return math.Min(pixelSize, maxWorld)
}

func (f *field) ComputeClampedSize(flat int) (float64, error) {
	b := f.set.Batch(flat)
	if b == nil {
		return 0, fmt.Errorf("field: batch %d: %w", flat, common.ErrOutOfBounds)
	}
	return f.clampedSize(b), nil
}

func (f *field) clampedSize(b *pixel_group.Batch) float64 {
	return ClampedSize(
		float64(f.cam.FovDegrees()),
		float64(f.cam.Zoom()),
		float64(b.MeanDepth()),
		f.distanceOffset,
		f.maxFootprintPx,
		f.viewportHeight,
		float64(f.pixelSize),
	)
}

func (f *field) UpdatePixelSize() int {
	changed := 0
	for flat, m := range f.meshes {
		if m == nil {
			continue
		}
		size := float32(f.clampedSize(f.set.Batch(flat)))
		if m.Material().SetSize(size) {
			changed++
		}
	}
	f.stats.LastRefresh = changed
	return changed
}

func (f *field) UpdateBufferGeometry() int {
	start := time.Now()

	type job struct {
		flat int
		size float32
	}
	var jobs []job
	for flat, m := range f.meshes {
		if m == nil {
			continue
		}
		size := float32(f.clampedSize(f.set.Batch(flat)))
		m.Material().SetSize(size)
		if size == f.set.Batch(flat).CommittedSize() {
			continue
		}
		jobs = append(jobs, job{flat: flat, size: size})
	}
	if len(jobs) == 0 {
		f.stats.LastCommit = 0
		return 0
	}

	// Each task owns exactly one batch; the barrier keeps the single-writer model intact.
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		b := f.set.Batch(j.flat)
		size := j.size
		f.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				b.Rewrite(size)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, j := range jobs {
		m := f.meshes[j.flat]
		m.MarkPositionsDirty()
		m.Material().SetCommittedSize(j.size)
	}

	f.stats.LastCommit = len(jobs)
	f.stats.TotalCommits++
	f.stats.CommitTime = time.Since(start)
	return len(jobs)
}
