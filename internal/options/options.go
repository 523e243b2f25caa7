// Package options implements the functional options used by every
// configurable constructor in colmem: field construction, parallel scans and
// the frame encoder and decoder.
//
//	type WriterOption = options.Option[*writerConfig]
//
//	func WithLevel(n int) WriterOption {
//		return options.New(func(c *writerConfig) error { ... })
//	}
package options

// Option configures a target of type T, usually a pointer to a config
// struct.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New returns an option that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError returns an option that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Combine groups opts into one option applied in order.
func Combine[T any](opts ...Option[T]) Option[T] {
	return optionFunc[T](func(target T) error {
		return Apply(target, opts...)
	})
}

// Apply applies opts to target in order and stops at the first error. Nil
// options are skipped so callers can build option lists conditionally.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
