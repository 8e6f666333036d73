package stats

import (
	"sync"
	"time"

	"github.com/nimbbl-tech/checkout-sandbox/internal/config"
)

// Bucket names recorded for each normalized checkout outcome.
const (
	BucketSuccess   = "success"
	BucketFailed    = "failed"
	BucketCancelled = "cancelled"
	BucketEncrypted = "encrypted"
)

// outcome records a single checkout outcome.
type outcome struct {
	bucket    string
	timestamp time.Time
}

// Recorder tracks recent checkout outcomes in a sliding window bounded both
// by entry count and by age.
type Recorder struct {
	mu             sync.RWMutex
	window         []outcome
	windowSize     int
	windowDuration time.Duration
}

// Snapshot summarizes the active window.
type Snapshot struct {
	Total       int            `json:"total"`
	Counts      map[string]int `json:"counts"`
	SuccessRate float64        `json:"success_rate"`
	LastUpdated time.Time      `json:"last_updated"`
}

// NewRecorder creates a recorder with default window configuration.
func NewRecorder() *Recorder {
	return NewRecorderWithConfig(
		config.OutcomeWindowSize,
		time.Duration(config.OutcomeWindowDurationMinutes)*time.Minute,
	)
}

// NewRecorderWithConfig creates a recorder with custom window settings for testing.
func NewRecorderWithConfig(windowSize int, windowDuration time.Duration) *Recorder {
	return &Recorder{
		windowSize:     windowSize,
		windowDuration: windowDuration,
	}
}

// Record adds one outcome to the window.
func (r *Recorder) Record(bucket string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.window = append(r.window, outcome{bucket: bucket, timestamp: time.Now()})
	r.prune()
}

// SnapshotNow returns the current window summary.
func (r *Recorder) SnapshotNow() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := r.activeWindow()

	snap := Snapshot{
		Counts:      make(map[string]int),
		LastUpdated: time.Now(),
	}
	for _, o := range active {
		snap.Counts[o.bucket]++
	}
	snap.Total = len(active)
	if snap.Total > 0 {
		snap.SuccessRate = float64(snap.Counts[BucketSuccess]) / float64(snap.Total)
	}
	return snap
}

// activeWindow returns outcomes within the time window, already under read lock.
func (r *Recorder) activeWindow() []outcome {
	if len(r.window) == 0 {
		return nil
	}

	cutoff := time.Now().Add(-r.windowDuration)
	active := make([]outcome, 0, len(r.window))
	for _, o := range r.window {
		if o.timestamp.After(cutoff) {
			active = append(active, o)
		}
	}

	if len(active) > r.windowSize {
		active = active[len(active)-r.windowSize:]
	}
	return active
}

// prune removes expired outcomes, called under write lock.
func (r *Recorder) prune() {
	cutoff := time.Now().Add(-r.windowDuration)
	pruned := make([]outcome, 0, len(r.window))
	for _, o := range r.window {
		if o.timestamp.After(cutoff) {
			pruned = append(pruned, o)
		}
	}

	if len(pruned) > r.windowSize {
		pruned = pruned[len(pruned)-r.windowSize:]
	}
	r.window = pruned
}
