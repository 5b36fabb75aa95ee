package prefilter

// Tracker watches one search's use of a Prefilter and switches it off when it
// stops paying for itself.
//
// Each candidate is scored by how many bytes the prefilter jumped over to
// reach it. Once WarmupPeriod candidates have been seen, the average jump is
// checked every CheckInterval candidates; if it falls below MinSkip the
// tracker goes inactive for the rest of the search and Find hands back every
// offset unchanged.
//
// A Tracker belongs to a single search and is not safe for concurrent use.
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	candidates uint64
	skipped    uint64
	checked    uint64 // candidates count at the last check
	active     bool
}

// TrackerConfig tunes when a Tracker gives up on its prefilter.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between checks.
	// Default: 64
	CheckInterval uint64

	// MinSkip is the smallest acceptable average jump, in bytes.
	// Default: 1.0
	MinSkip float64

	// WarmupPeriod is the number of candidates seen before the first check.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the configuration used by NewTracker.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinSkip:       1.0,
		WarmupPeriod:  128,
	}
}

// NewTracker wraps inner with the default configuration.
// It returns nil when inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig wraps inner with config.
// It returns nil when inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{inner: inner, config: config, active: true}
}

// Find returns the next candidate at or after start, or -1.
//
// While inactive it returns start itself as long as start is within the
// haystack, so callers fall back to trying every offset.
func (t *Tracker) Find(haystack string, start int) int {
	if !t.active {
		if start > len(haystack) {
			return -1
		}
		return start
	}

	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.skipped += uint64(pos - start)
		t.check()
	}
	return pos
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the candidates found, the bytes skipped to reach them and
// whether the prefilter is still active.
func (t *Tracker) Stats() (candidates, skipped uint64, active bool) {
	return t.candidates, t.skipped, t.active
}

func (t *Tracker) check() {
	if t.candidates < t.config.WarmupPeriod || t.candidates-t.checked < t.config.CheckInterval {
		return
	}
	t.checked = t.candidates
	if float64(t.skipped)/float64(t.candidates) < t.config.MinSkip {
		t.active = false
	}
}
