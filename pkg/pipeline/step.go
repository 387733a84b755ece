package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Step is the output of a pipeline stage. It is consumed by the next stage.
type Step[O any] struct {
	Name       string
	Output     chan O
	concurrent int
	metric     *Metric
}

func sequentialOneToOneFn[I any, O any](ctx context.Context, goIdx int, input *Step[I], output *Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
outer:
	for {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				break outer
			}
			startFn := time.Now()
			out, err := oneToOneFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d:", goIdx)
			}
			endFn := time.Since(startFn)

			// we check the context again to make sure all go routines currently running
			// stop to add new elements to the pipeline
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
			case output.Output <- out:
				if output.metric != nil {
					output.metric.add(endFn)
				}
			}
		}
	}

	return nil
}

func concurrentOneToOneFn[I any, O any](ctx context.Context, input *Step[I], output *Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.concurrent)
	// starts many consumers concurrently
	// each consumer stops as soon as an error happens
	for goIdx := 0; goIdx < output.concurrent; goIdx++ {
		localGoIdx := goIdx
		errGrp.Go(func() error {
			return sequentialOneToOneFn(dCtx, localGoIdx, input, output, oneToOneFn)
		})
	}

	return errGrp.Wait()
}

func oneToOne[I any, O any](ctx context.Context, input *Step[I], output *Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	if output.concurrent == 0 {
		output.concurrent = 1
	}
	if output.concurrent == 1 {
		return sequentialOneToOneFn(ctx, 1, input, output, oneToOneFn)
	}

	return concurrentOneToOneFn(ctx, input, output, oneToOneFn)
}

// AddStepOneToOne adds a step that transforms every input element into exactly
// one output element.
func AddStepOneToOne[I any, O any](p *Pipeline, name string, input *Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &Step[O]{
		Name:   name,
		Output: make(chan O),
	}
	for _, opt := range opts {
		opt(step)
	}

	mt, err := p.register(input.Name, name)
	if err != nil {
		return nil, err
	}
	step.metric = mt

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	go func() {
		defer func() {
			close(errC)
			close(step.Output)
		}()
		err := oneToOne(p.ctx, input, step, oneToOneFn)
		if err != nil {
			errC <- err
		}
	}()
	p.errcList.add(decoratedError)

	return step, nil
}
