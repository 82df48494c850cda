package bumpfill

import "unsafe"

// Builder binds an Allocator to the logging and statistics used by the fill
// functions. Pass it wherever an Allocator is expected.
type Builder struct {
	alloc  Allocator
	logger *Logger
	stats  *Stats
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger fills report to. The default discards output.
func WithLogger(l *Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = l
	}
}

// WithStats sets the counters fills are recorded in.
func WithStats(s *Stats) BuilderOption {
	return func(b *Builder) {
		b.stats = s
	}
}

// NewBuilder wraps a. A Builder wrapping another Builder starts from its settings.
func NewBuilder(a Allocator, opts ...BuilderOption) *Builder {
	b := &Builder{alloc: a}
	if inner, ok := a.(*Builder); ok {
		*b = *inner
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = noop
	}
	return b
}

// Reserve delegates to the wrapped allocator.
func (b *Builder) Reserve(count, size, align uintptr) (unsafe.Pointer, error) {
	return b.alloc.Reserve(count, size, align)
}

// Stats returns the counters attached with WithStats, or nil.
func (b *Builder) Stats() *Stats {
	return b.stats
}

// Option configures a single fill.
type Option[T any] func(*fillConfig[T])

type fillConfig[T any] struct {
	destroy func(*T)
}

// WithDestroy sets the hook run on each constructed element of an abandoned
// fill, in place of the element's Destroy method.
func WithDestroy[T any](fn func(*T)) Option[T] {
	return func(c *fillConfig[T]) {
		c.destroy = fn
	}
}

func builderFor(a Allocator) *Builder {
	if b, ok := a.(*Builder); ok {
		return b
	}
	return &Builder{alloc: a, logger: noop}
}

var noop = NoopLogger()
