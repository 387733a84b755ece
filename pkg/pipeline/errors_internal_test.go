package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeErrors(t *testing.T) {
	first := make(chan error, 1)
	second := make(chan error, 1)
	first <- assert.AnError
	close(first)
	close(second)

	out := mergeErrors(newErrorChan("first", first), newErrorChan("second", second), newErrorChan("nil", nil))

	var errs []error
	for err := range out {
		errs = append(errs, err)
	}

	assert.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], assert.AnError)
	assert.ErrorContains(t, errs[0], "first")
}

func TestWaitForPipelineNoError(t *testing.T) {
	c := make(chan error)
	close(c)

	assert.NoError(t, waitForPipeline(newErrorChan("empty", c)))
}
