package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// AddSink adds the final step of the pipeline. The sink function is called
// once per element, sequentially, in channel order.
func AddSink[I any](p *Pipeline, name string, input *Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if p == nil {
		return ErrPipelineMustBeSet
	}
	if input == nil {
		return ErrInputMustBeSet
	}

	mt, err := p.register(input.Name, name)
	if err != nil {
		return err
	}
	if p.drawer != nil {
		err := p.drawer.addLink(name, endStepName)
		if err != nil {
			return errors.Wrapf(err, "unable to add link %s -> %s", name, endStepName)
		}
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)
	go func() {
		defer close(errC)
	outer:
		for {
			select {
			case <-p.ctx.Done():
				errC <- p.ctx.Err()

				break outer
			case in, ok := <-input.Output:
				if !ok {
					break outer
				}
				startFn := time.Now()
				err := sinkFn(p.ctx, in)
				if err != nil {
					errC <- err

					break outer
				}
				if mt != nil {
					mt.add(time.Since(startFn))
				}
			}
		}
		if mt != nil {
			mt.end(time.Since(p.startTime))
		}
	}()
	p.errcList.add(decoratedError)

	return nil
}
