// Package pipeline provides a small channel-based pipeline engine.
//
// A pipeline is assembled from a root step producing values, any number of
// one-to-one transformation steps, and a sink consuming the final values.
// Each step runs in its own goroutine and owns an error channel; the pipeline
// merges all error channels and stops on the first error, cancelling the
// remaining steps through the shared context.
//
// Optional features are enabled through pipeline options: PipelineMeasure
// records per-step average durations, PipelineDrawer renders the step graph
// to a DOT file once the run finishes.
package pipeline
