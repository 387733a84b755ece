package pipeline

import (
	"context"
)

// AddRootStep adds the step producing the initial elements of the pipeline.
// The step function must return once every element has been pushed to
// rootChan; the channel is closed on its behalf.
func AddRootStep[O any](p *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := &Step[O]{
		Name:   name,
		Output: make(chan O),
	}
	for _, opt := range opts {
		opt(step)
	}

	mt, err := p.register(startStepName, name)
	if err != nil {
		return nil, err
	}
	step.metric = mt

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	go func() {
		defer func() {
			close(step.Output)
			close(errC)
		}()
		err := stepFn(p.ctx, step.Output)
		if err != nil {
			errC <- err
		}
	}()
	p.errcList.add(decoratedError)

	return step, nil
}
