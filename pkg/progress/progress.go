// Package progress renders attempt-count snapshots as a terminal progress bar.
package progress

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// DefaultThrottle bounds how often the bar is redrawn.
const DefaultThrottle = 100 * time.Millisecond

// Reporter consumes attempt snapshots. Tick may be called from any worker;
// Update is called by a single designated worker.
type Reporter interface {
	Tick()
	Update(attempts uint64)
	Finish(attempts uint64, msg string)
}

// EstimatedRuns is the expected number of attempts to match a vanity
// string: every character is one of 32 symbols.
func EstimatedRuns(vanity string) float64 {
	return math.Pow(32, float64(len(vanity)))
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Tick()                 {}
func (Nop) Update(uint64)         {}
func (Nop) Finish(uint64, string) {}

// BarReporter draws tries against the estimate with rate and ETA.
// Estimates that do not fit an int64 give an open-ended spinner.
type BarReporter struct {
	bar *progressbar.ProgressBar

	mu    sync.Mutex
	limit int64
	last  int64
}

// NewBarReporter creates a bar on w for a search expected to take
// estimated attempts.
func NewBarReporter(w io.Writer, estimated float64, throttle time.Duration) *BarReporter {
	limit := int64(-1)
	if estimated < math.MaxInt64 {
		limit = int64(estimated)
	}

	bar := progressbar.NewOptions64(
		limit,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("searching"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("tries"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionSetWidth(50),
	)
	return &BarReporter{bar: bar, limit: limit}
}

// Tick redraws the bar at the last known position.
func (r *BarReporter) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.bar.Set64(r.last)
}

// Update moves the bar to attempts. A search reaching its estimate doubles
// the bar length; the bar only completes in Finish.
func (r *BarReporter) Update(attempts uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(int64(attempts))
}

// Finish draws the final state with msg as the description.
func (r *BarReporter) Finish(attempts uint64, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.set(int64(attempts))
	r.bar.Describe(msg)
	_ = r.bar.Finish()
}

func (r *BarReporter) set(n int64) {
	if r.limit >= 0 && n >= r.limit && n < math.MaxInt64/2 {
		r.limit = 2 * n
		r.bar.ChangeMax64(r.limit)
	}
	r.last = n
	_ = r.bar.Set64(n)
}
