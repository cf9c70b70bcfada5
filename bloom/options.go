package bloom

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
)

type FilterOptions[T any] struct {
	Log         logger.Logger
	IndexScheme IndexScheme
	Sparse      bool
	Hasher      Hasher[T]

	// ignored names options that did not apply to this element type.
	ignored []string
}

// Option configures a filter. Options that are specific to an element type
// type assert their target and are ignored by filters of a different type.
type Option func(any)

func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(interface{ setLogger(logger.Logger) }); ok {
			o.setLogger(log)
		}
	}
}

func WithIndexScheme(scheme IndexScheme) Option {
	return func(opts any) {
		if o, ok := opts.(interface{ setIndexScheme(IndexScheme) }); ok {
			o.setIndexScheme(scheme)
		}
	}
}

// WithSparseBits stores only the set positions instead of a dense m bit
// vector.
func WithSparseBits() Option {
	return func(opts any) {
		if o, ok := opts.(interface{ setSparse(bool) }); ok {
			o.setSparse(true)
		}
	}
}

// WithHasher replaces the element hash the filter was constructed with.
//
// The hasher only applies to filters whose element type is exactly T. For any
// other filter it is ignored, and the filter keeps its default hasher; a
// filter with a logger reports this at debug level.
func WithHasher[T any](hasher Hasher[T]) Option {
	return func(opts any) {
		if o, ok := opts.(*FilterOptions[T]); ok {
			o.Hasher = hasher
			return
		}
		if o, ok := opts.(interface{ ignore(string) }); ok {
			o.ignore(fmt.Sprintf("WithHasher[%T]", *new(T)))
		}
	}
}

func (o *FilterOptions[T]) setLogger(log logger.Logger)       { o.Log = log }
func (o *FilterOptions[T]) setIndexScheme(scheme IndexScheme) { o.IndexScheme = scheme }
func (o *FilterOptions[T]) setSparse(sparse bool)             { o.Sparse = sparse }
func (o *FilterOptions[T]) ignore(option string)              { o.ignored = append(o.ignored, option) }

func newFilterOptions[T any](hasher Hasher[T], opts ...Option) FilterOptions[T] {
	o := FilterOptions[T]{
		IndexScheme: IndexPRNG,
		Hasher:      hasher,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
