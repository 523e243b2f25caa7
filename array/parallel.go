package array

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/internal/options"
)

// DefaultChunkSize is the number of elements one parallel task scans.
const DefaultChunkSize = 1 << 14

// Indexed is the read-only view parallel scans operate on. Every array and
// Window satisfies it.
type Indexed[V any] interface {
	Len() int
	Get(i int) (V, bool)
}

type parallelConfig struct {
	workers   int
	chunkSize int
}

// ParallelOption configures a parallel scan.
type ParallelOption = options.Option[*parallelConfig]

// WithWorkers bounds the number of goroutines scanning at once. The default
// is GOMAXPROCS.
func WithWorkers(n int) ParallelOption {
	return options.New(func(c *parallelConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: workers must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.workers = n

		return nil
	})
}

// WithChunkSize sets how many elements each task scans.
func WithChunkSize(n int) ParallelOption {
	return options.New(func(c *parallelConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: chunk size must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.chunkSize = n

		return nil
	})
}

// ParallelFold splits src into chunks, folds each chunk on its own goroutine
// starting from init(), then merges the chunk results in chunk order. fold
// sees every element, nulls included, with ok reporting validity. The result
// is deterministic as long as merge is associative.
//
// src must not be mutated while the scan runs.
func ParallelFold[V, R any](
	src Indexed[V],
	init func() R,
	fold func(acc R, i int, v V, ok bool) R,
	merge func(a, b R) R,
	opts ...ParallelOption,
) (R, error) {
	cfg := &parallelConfig{workers: runtime.GOMAXPROCS(0), chunkSize: DefaultChunkSize}
	if err := options.Apply(cfg, opts...); err != nil {
		var zero R
		return zero, err
	}

	n := src.Len()
	chunks := (n + cfg.chunkSize - 1) / cfg.chunkSize
	if chunks <= 1 {
		acc := init()
		for i := range n {
			v, ok := src.Get(i)
			acc = fold(acc, i, v, ok)
		}

		return acc, nil
	}

	results := make([]R, chunks)
	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for c := range chunks {
		g.Go(func() error {
			start := c * cfg.chunkSize
			end := min(start+cfg.chunkSize, n)
			acc := init()
			for i := start; i < end; i++ {
				v, ok := src.Get(i)
				acc = fold(acc, i, v, ok)
			}
			results[c] = acc

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var zero R
		return zero, err
	}

	out := results[0]
	for _, r := range results[1:] {
		out = merge(out, r)
	}

	return out, nil
}

// ParallelSum returns the sum of the valid elements of src.
func ParallelSum[T Numeric](src Indexed[T], opts ...ParallelOption) (T, error) {
	return ParallelFold(src,
		func() T { return 0 },
		func(acc T, _ int, v T, ok bool) T {
			if ok {
				acc += v
			}

			return acc
		},
		func(a, b T) T { return a + b },
		opts...,
	)
}

// ParallelCount returns how many valid elements of src satisfy pred.
func ParallelCount[V any](src Indexed[V], pred func(V) bool, opts ...ParallelOption) (int, error) {
	return ParallelFold(src,
		func() int { return 0 },
		func(acc int, _ int, v V, ok bool) int {
			if ok && pred(v) {
				acc++
			}

			return acc
		},
		func(a, b int) int { return a + b },
		opts...,
	)
}

// ParallelFilter returns, in ascending order, the indices of the valid
// elements of src that satisfy pred.
func ParallelFilter[V any](src Indexed[V], pred func(V) bool, opts ...ParallelOption) ([]int, error) {
	return ParallelFold(src,
		func() []int { return nil },
		func(acc []int, i int, v V, ok bool) []int {
			if ok && pred(v) {
				acc = append(acc, i)
			}

			return acc
		},
		func(a, b []int) []int { return append(a, b...) },
		opts...,
	)
}
