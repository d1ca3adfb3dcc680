package pixel_field

import "time"

// DefaultSettleDelay is the quiet period after which camera motion is considered settled.
const DefaultSettleDelay = 150 * time.Millisecond

// SettleDetector reports, once per motion episode, that the camera has been still for a quiet period.
// It is fed the camera's last-motion timestamp every frame and is not safe for concurrent use.
type SettleDetector struct {
	quiet      time.Duration
	lastMotion time.Time
	fired      bool
}

// NewSettleDetector creates a SettleDetector. Non-positive delays fall back to DefaultSettleDelay.
//
// Parameters:
//   - quiet: how long the camera must be still
//
// Returns:
//   - *SettleDetector: the detector
func NewSettleDetector(quiet time.Duration) *SettleDetector {
	if quiet <= 0 {
		quiet = DefaultSettleDelay
	}
	return &SettleDetector{quiet: quiet, fired: true}
}

// Settled reports true exactly once after each motion episode, on the first call made at least
// the quiet period after the most recent motion.
//
// Parameters:
//   - lastMotion: the timestamp of the most recent camera motion
//   - now: the current time
//
// Returns:
//   - bool: true if the caller should commit geometry now
func (d *SettleDetector) Settled(lastMotion, now time.Time) bool {
	if lastMotion.After(d.lastMotion) {
		d.lastMotion = lastMotion
		d.fired = false
	}
	if d.fired || now.Sub(d.lastMotion) < d.quiet {
		return false
	}
	d.fired = true
	return true
}
