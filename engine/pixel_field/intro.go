package pixel_field

import "time"

// Intro animates the startup fly-in: every non-empty batch starts StartDepth above the image plane
// and eases down to z = 0. Successive batches start Stagger apart so the image assembles in waves.
// Step must be called from the render goroutine, like the other field updates.
type Intro struct {
	field      Field
	flats      []int
	startDepth float32
	duration   time.Duration
	stagger    time.Duration
	start      time.Time
	done       bool
}

// NewIntro creates an Intro over every non-empty batch of f and lifts them to startDepth.
// A non-positive duration produces an Intro that is already done.
func NewIntro(f Field, startDepth float32, duration, stagger time.Duration, now time.Time) (*Intro, error) {
	in := &Intro{
		field:      f,
		startDepth: startDepth,
		duration:   duration,
		stagger:    max(stagger, 0),
		start:      now,
		done:       duration <= 0,
	}
	for _, b := range f.Batches().NonEmpty() {
		in.flats = append(in.flats, b.Index())
	}
	if in.done {
		return in, nil
	}
	for _, flat := range in.flats {
		if err := f.SetBatchDepth(flat, startDepth); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Step advances every batch to its depth at now and reports whether the fly-in has finished.
// Once finished every batch sits exactly on the image plane and further calls are no-ops.
func (in *Intro) Step(now time.Time) (bool, error) {
	if in.done {
		return true, nil
	}
	elapsed := now.Sub(in.start)
	finished := true
	for i, flat := range in.flats {
		t := float32(elapsed-time.Duration(i)*in.stagger) / float32(in.duration)
		if t < 1 {
			finished = false
		}
		if err := in.field.SetBatchDepth(flat, in.startDepth*(1-easeOutCubic(t))); err != nil {
			return false, err
		}
	}
	in.done = finished
	return finished, nil
}

// Done reports whether the fly-in has finished.
func (in *Intro) Done() bool {
	return in.done
}

func easeOutCubic(t float32) float32 {
	t = min(max(t, 0), 1)
	u := 1 - t
	return 1 - u*u*u
}
