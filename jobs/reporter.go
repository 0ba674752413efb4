package jobs

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/newsmaint/core"
)

// Summary is the final accounting of one run.
// selected == succeeded + skipped + failed always holds on completion.
type Summary struct {
	Selected  int
	Succeeded int
	Skipped   int
	Failed    int
}

// Reporter accumulates per-article outcomes and writes human-readable
// progress lines. It keeps no state beyond the counters.
type Reporter struct {
	writer  io.Writer
	job     string
	summary Summary
	done    int
	start   time.Time
	mu      sync.Mutex
}

// NewReporter creates a reporter for a run over selected articles.
// writer: where to write progress output (typically os.Stdout)
func NewReporter(writer io.Writer, job string, selected int) *Reporter {
	return &Reporter{
		writer:  writer,
		job:     job,
		summary: Summary{Selected: selected},
		start:   time.Now(),
	}
}

// Item records the outcome of one article and prints its progress line.
func (r *Reporter) Item(id core.ID, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	switch outcome.Status {
	case StatusSucceeded:
		r.summary.Succeeded++
	case StatusSkipped:
		r.summary.Skipped++
	case StatusFailed:
		r.summary.Failed++
	}

	if outcome.Reason != "" {
		fmt.Fprintf(r.writer, "[%d/%d] article %d: %s (%s)\n",
			r.done, r.summary.Selected, id, outcome.Status, outcome.Reason)
		return
	}
	fmt.Fprintf(r.writer, "[%d/%d] article %d: %s\n",
		r.done, r.summary.Selected, id, outcome.Status)
}

// Finish prints the final tally and returns the summary.
func (r *Reporter) Finish() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.start)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(r.done) / elapsed.Seconds()
	}
	fmt.Fprintf(r.writer, "%s complete: %d selected, %d succeeded, %d skipped, %d failed in %v (%.1f articles/sec)\n",
		r.job, r.summary.Selected, r.summary.Succeeded, r.summary.Skipped, r.summary.Failed,
		elapsed.Round(time.Millisecond), rate)

	return r.summary
}

// Summary returns the counters accumulated so far.
func (r *Reporter) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}
