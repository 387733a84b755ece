package pipeline

type PipelineOption func(p *Pipeline)

// PipelineDrawer renders the pipeline step graph to a DOT file when the run
// finishes.
func PipelineDrawer(dotFileName string) PipelineOption {
	return func(p *Pipeline) {
		p.drawer = newDrawer(dotFileName)
	}
}

// PipelineMeasure collects per-step average durations during the run.
func PipelineMeasure() PipelineOption {
	return func(p *Pipeline) {
		p.measure = newMeasure()
	}
}

type StepOption[O any] func(s *Step[O])

// StepConcurrency sets the number of goroutines running the step function.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *Step[O]) {
		s.concurrent = concurrent
	}
}
