package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/askiada/go-starcolor/pkg/pipeline"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildNumbersRoot(total int) func(ctx context.Context, rootChan chan<- int) error {
	return func(ctx context.Context, rootChan chan<- int) error {
		for i := 0; i < total; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- i:
			}
		}

		return nil
	}
}

func TestPipelineRun(t *testing.T) {
	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "numbers", buildNumbersRoot(10))
	require.NoError(t, err)

	doubleStep, err := pipeline.AddStepOneToOne(pipe, "double", rootStep, func(ctx context.Context, i int) (int, error) {
		return i * 2, nil
	})
	require.NoError(t, err)

	textStep, err := pipeline.AddStepOneToOne(pipe, "text", doubleStep, func(ctx context.Context, i int) (string, error) {
		return strconv.Itoa(i), nil
	})
	require.NoError(t, err)

	var got []string
	err = pipeline.AddSink(pipe, "collect", textStep, func(ctx context.Context, in string) error {
		got = append(got, in)

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, pipe.Run())
	assert.Equal(t, []string{"0", "2", "4", "6", "8", "10", "12", "14", "16", "18"}, got)
}

func TestPipelineRunRootError(t *testing.T) {
	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "numbers", func(ctx context.Context, rootChan chan<- int) error {
		return assert.AnError
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "collect", rootStep, func(ctx context.Context, in int) error {
		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.Error(t, err)
	assert.ErrorContains(t, err, "numbers")
}

func TestPipelineRunStepError(t *testing.T) {
	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "numbers", buildNumbersRoot(10))
	require.NoError(t, err)

	failStep, err := pipeline.AddStepOneToOne(pipe, "fail", rootStep, func(ctx context.Context, i int) (int, error) {
		if i == 5 {
			return 0, assert.AnError
		}

		return i, nil
	})
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "collect", failStep, func(ctx context.Context, in int) error {
		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.Error(t, err)
	assert.ErrorContains(t, err, "fail")
}

func TestPipelineRunSinkError(t *testing.T) {
	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "numbers", buildNumbersRoot(10))
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "collect", rootStep, func(ctx context.Context, in int) error {
		if in == 3 {
			return assert.AnError
		}

		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.Error(t, err)
	assert.ErrorContains(t, err, "collect")
}

func TestPipelineRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pipe, err := pipeline.New(ctx)
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "numbers", buildNumbersRoot(1000))
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "collect", rootStep, func(ctx context.Context, in int) error {
		if in == 5 {
			cancel()
		}

		return nil
	})
	require.NoError(t, err)

	err = pipe.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineNilChecks(t *testing.T) {
	_, err := pipeline.AddRootStep[int](nil, "numbers", buildNumbersRoot(1))
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)

	pipe, err := pipeline.New(context.Background())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, pipe.Run())
	}()

	_, err = pipeline.AddStepOneToOne(pipe, "double", (*pipeline.Step[int])(nil), func(ctx context.Context, i int) (int, error) {
		return i, nil
	})
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)

	err = pipeline.AddSink(pipe, "collect", (*pipeline.Step[int])(nil), func(ctx context.Context, in int) error {
		return nil
	})
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
}

func TestPipelineDrawerAndMeasure(t *testing.T) {
	dotFile := filepath.Join(t.TempDir(), "pipeline.dot")

	pipe, err := pipeline.New(context.Background(), pipeline.PipelineDrawer(dotFile), pipeline.PipelineMeasure())
	require.NoError(t, err)

	rootStep, err := pipeline.AddRootStep(pipe, "numbers", buildNumbersRoot(5))
	require.NoError(t, err)

	doubleStep, err := pipeline.AddStepOneToOne(pipe, "double", rootStep, func(ctx context.Context, i int) (int, error) {
		return i * 2, nil
	}, pipeline.StepConcurrency[int](2))
	require.NoError(t, err)

	err = pipeline.AddSink(pipe, "collect", doubleStep, func(ctx context.Context, in int) error {
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, pipe.Run())

	content, err := os.ReadFile(dotFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "digraph")
	assert.Contains(t, string(content), `"double"`)
	assert.Contains(t, string(content), `"numbers" -> "double"`)

	msr := pipe.Measure()
	require.NotNil(t, msr)
	metrics := msr.AllMetrics()
	require.Contains(t, metrics, "double")
	assert.EqualValues(t, 5, metrics["double"].Count())
	require.Contains(t, metrics, "collect")
	assert.EqualValues(t, 5, metrics["collect"].Count())
}
