package pipeline

import (
	"sync"
	"time"
)

// Metric accumulates the durations of a single step.
type Metric struct {
	mu          *sync.Mutex
	stepElapsed time.Duration
	total       int64
	endDuration time.Duration
}

func (mt *Metric) add(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed
}

func (mt *Metric) end(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.endDuration = endDuration
}

// AVGDuration returns the average duration of one step execution.
func (mt *Metric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

// TotalDuration returns the elapsed time between the pipeline start and the
// moment the sink finished. It is only set on the sink metric.
func (mt *Metric) TotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.endDuration
}

// Count returns the number of elements the step processed.
func (mt *Metric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

// Measure holds the metrics of every step of a pipeline.
type Measure struct {
	mu    sync.Mutex
	steps map[string]*Metric
}

func newMeasure() *Measure {
	return &Measure{
		steps: make(map[string]*Metric),
	}
}

func (m *Measure) addStep(name string) *Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt := &Metric{
		mu: &sync.Mutex{},
	}
	m.steps[name] = mt

	return mt
}

// AllMetrics returns the metric of every step keyed by step name.
func (m *Measure) AllMetrics() map[string]*Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*Metric, len(m.steps))
	for name, mt := range m.steps {
		out[name] = mt
	}

	return out
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
