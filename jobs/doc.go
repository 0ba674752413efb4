// Package jobs implements the batch maintenance passes over the
// latest_news table: the embedding backfill and the canonical-URL repair.
//
// Both jobs share one shape. A Job turns the selector's snapshot into
// per-article tasks; the Runner executes them one at a time with a pacing
// delay between items, isolating per-item failures; the Reporter counts
// outcomes and emits one line per article plus a final tally. Per-item
// errors never abort a run, only a selector failure does.
package jobs
