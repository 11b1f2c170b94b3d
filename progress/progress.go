package progress

import (
	"log"
	"sync"
	"time"
)

// Callback receives the number of processed reports and the run total.
type Callback func(completed, total int)

// Delta represents an incremental counter change.
type Delta struct {
	Completed int
	Failed    int
}

// Progress keeps aggregated counters for one export run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Total     int
	Completed int
	Failed    int

	sync.Mutex
	onChange Callback
}

// Update applies the delta and then invokes the callback outside the critical section.
// A panicking callback is recovered and logged; it never affects the run.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Completed += d.Completed
	p.Failed += d.Failed
	completed, total := p.Completed, p.Total
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		notify(cb, completed, total)
	}
}

func notify(cb Callback, completed, total int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("progress callback failed at %d/%d: %v", completed, total, r)
		}
	}()
	cb(completed, total)
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return Progress{RunID: p.RunID, StartedAt: p.StartedAt, Total: p.Total, Completed: p.Completed, Failed: p.Failed}
}

// Percent returns completion in whole percent; an empty run is complete.
func Percent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	return completed * 100 / total
}

// New creates a tracker for a run of total reports.
func New(runID string, total int, onChange Callback) *Progress {
	return &Progress{RunID: runID, StartedAt: time.Now(), Total: total, onChange: onChange}
}
