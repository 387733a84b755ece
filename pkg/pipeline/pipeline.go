package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	startStepName = "start"
	endStepName   = "end"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context
	cancel    context.CancelFunc
	errcList  *errorChans
	drawer    *drawer
	measure   *Measure
	startTime time.Time
}

// New creates a new pipeline. Steps added afterwards start their goroutines
// immediately and block on their channels until the whole chain is connected.
func New(ctx context.Context, opts ...PipelineOption) (*Pipeline, error) {
	dCtx, cancel := context.WithCancel(ctx)
	pipe := &Pipeline{
		ctx:       dCtx,
		cancel:    cancel,
		errcList:  &errorChans{},
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(pipe)
	}

	if pipe.drawer != nil {
		err := pipe.drawer.addStep(startStepName)
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to add start step")
		}
		err = pipe.drawer.addStep(endStepName)
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to add end step")
		}
	}

	return pipe, nil
}

// waitForPipeline waits for results from all error channels.
// It returns early on the first error.
func waitForPipeline(errs ...*errorChan) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}

	return nil
}

// Run waits for the pipeline to finish. The first step error cancels every
// other step and is returned.
func (p *Pipeline) Run() error {
	defer p.cancel()

	err := waitForPipeline(p.errcList.list...)
	if err != nil {
		return err
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	if p.drawer == nil {
		return nil
	}

	if p.measure != nil {
		err := p.drawer.addMeasure(p.measure)
		if err != nil {
			return errors.Wrap(err, "unable to add measure to drawer")
		}
	}

	err := p.drawer.draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// Measure returns the collected per-step metrics, or nil when the
// PipelineMeasure option was not set.
func (p *Pipeline) Measure() *Measure {
	return p.measure
}

// register records a step and its link to the parent in the optional drawer
// and attaches a metric when measuring is enabled.
func (p *Pipeline) register(parentName, name string) (*Metric, error) {
	if p.drawer != nil {
		err := p.drawer.addStep(name)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add step %s", name)
		}
		err = p.drawer.addLink(parentName, name)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add link %s -> %s", parentName, name)
		}
	}

	if p.measure == nil {
		return nil, nil //nolint:nilnil
	}

	return p.measure.addStep(name), nil
}
