package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOneToOne(t *testing.T) {
	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":    {concurrent: 1},
		"sequential v2": {concurrent: 0},
		"concurrent 2":  {concurrent: 2},
		"concurrent 10": {concurrent: 10},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			input := &Step[int]{Name: "input", Output: createInputChan(t, ctx, 10)}
			output := &Step[int]{Name: "output", Output: make(chan int), concurrent: tc.concurrent}
			got := make(chan []int, 1)
			go func() {
				got <- processOutputChan(t, output.Output)
			}()
			go func() {
				defer close(output.Output)
				err := oneToOne(ctx, input, output, func(ctx context.Context, i int) (int, error) {
					return i * 2, nil
				})
				assert.Nil(t, err)
			}()
			assert.ElementsMatch(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, <-got)
		})
	}
}

func TestOneToOneKeepsOrderWhenSequential(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	input := &Step[int]{Name: "input", Output: createInputChan(t, ctx, 10)}
	output := &Step[int]{Name: "output", Output: make(chan int), concurrent: 1}
	got := make(chan []int, 1)
	go func() {
		got <- processOutputChan(t, output.Output)
	}()
	go func() {
		defer close(output.Output)
		err := oneToOne(ctx, input, output, func(ctx context.Context, i int) (int, error) {
			return i, nil
		})
		assert.Nil(t, err)
	}()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, <-got)
}

func TestOneToOneCancelInput(t *testing.T) {
	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 2": {concurrent: 2},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			input := &Step[int]{Name: "input", Output: createInputChanWithCancel(t, ctx, 10, 5, cancel)}
			output := &Step[int]{Name: "output", Output: make(chan int), concurrent: tc.concurrent}
			got := make(chan []int, 1)
			go func() {
				got <- processOutputChan(t, output.Output)
			}()
			go func() {
				defer close(output.Output)
				err := oneToOne(ctx, input, output, func(ctx context.Context, i int) (int, error) {
					return i, nil
				})
				assert.Error(t, err)
			}()
			assert.NotZero(t, <-got)
		})
	}
}

func TestOneToOneError(t *testing.T) {
	tcs := map[string]struct {
		concurrent int
	}{
		"sequential":   {concurrent: 1},
		"concurrent 2": {concurrent: 2},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			input := &Step[int]{Name: "input", Output: createInputChanWithCancel(t, ctx, 10, 5, cancel)}
			output := &Step[int]{Name: "output", Output: make(chan int), concurrent: tc.concurrent}
			got := make(chan []int, 1)
			go func() {
				got <- processOutputChan(t, output.Output)
			}()
			go func() {
				defer close(output.Output)
				err := oneToOne(ctx, input, output, func(ctx context.Context, i int) (int, error) {
					if i == 3 {
						return 0, assert.AnError
					}

					return i, nil
				})
				assert.Error(t, err)
			}()
			<-got
		})
	}
}
