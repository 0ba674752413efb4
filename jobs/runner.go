// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package jobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/newsmaint/core"
)

// DefaultDelay is the pause between items when none is configured.
// It is the only rate-limit shim; there is no token bucket or backoff.
const DefaultDelay = 100 * time.Millisecond

// Task is one article's worth of work. Run must be order-independent
// with respect to other tasks of the same job.
type Task struct {
	ID  core.ID
	Run func(ctx context.Context) Outcome
}

// Job produces the tasks of one maintenance pass.
type Job interface {
	// Name identifies the job in progress output.
	Name() string

	// Tasks asks the selector for the candidate snapshot and wraps each
	// candidate in a Task. An error here is fatal for the run.
	Tasks(ctx context.Context) ([]Task, error)
}

// Runner executes a single pass of a job to completion.
// Items are processed one at a time; the configured delay is slept
// between items, not around them.
type Runner struct {
	delay  time.Duration
	out    io.Writer
	logger *slog.Logger
}

// NewRunner creates a runner.
// delay: pause between items; <= 0 selects DefaultDelay.
// out: where to write progress output (typically os.Stdout)
func NewRunner(delay time.Duration, out io.Writer) *Runner {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Runner{
		delay:  delay,
		out:    out,
		logger: slog.Default().With("component", "runner"),
	}
}

// Run executes the job and returns its summary. Per-item failures are
// counted, not returned; the error is non-nil only for fatal conditions
// (selector failure, cancellation).
func (r *Runner) Run(ctx context.Context, job Job) (Summary, error) {
	tasks, err := job.Tasks(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: select candidates: %w", job.Name(), err)
	}

	if len(tasks) == 0 {
		fmt.Fprintf(r.out, "%s: nothing to do\n", job.Name())
		return Summary{}, nil
	}

	fmt.Fprintf(r.out, "%s: processing %d articles\n", job.Name(), len(tasks))
	reporter := NewReporter(r.out, job.Name(), len(tasks))

	for i, task := range tasks {
		reporter.Item(task.ID, r.runTask(ctx, task))

		if i == len(tasks)-1 {
			break
		}

		// The inter-item pause is the loop's only suspension point.
		timer := time.NewTimer(r.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return reporter.Finish(), ctx.Err()
		case <-timer.C:
		}
	}

	return reporter.Finish(), nil
}

// runTask invokes the worker with panic isolation: a panic counts as a
// failed item and the run continues.
func (r *Runner) runTask(ctx context.Context, task Task) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("worker panic", "id", task.ID, "panic", rec)
			outcome = Failed(fmt.Sprintf("panic: %v", rec))
		}
	}()
	return task.Run(ctx)
}
