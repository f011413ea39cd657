// Package loader fetches a list once and keeps it, logging failures instead
// of surfacing them.
package loader

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type State int

const (
	Idle State = iota
	Loading
	Loaded
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "idle"
	}
}

// Source yields a sequence of records.
type Source[T any] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) Fetch(ctx context.Context) ([]T, error) { return f(ctx) }

type Loader[T any] struct {
	name   string
	source Source[T]
	logger *zap.Logger
	group  singleflight.Group

	mu      sync.RWMutex
	state   State
	items   []T
	lastErr error
}

func New[T any](name string, source Source[T], logger ...*zap.Logger) *Loader[T] {
	l := zap.L().Named("loader")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loader")
	}
	return &Loader[T]{
		name:   name,
		source: source,
		logger: l.With(zap.String("source", name)),
		items:  []T{},
	}
}

// Load fetches at most once. Later calls return the loaded items; concurrent
// first calls share a single fetch.
func (l *Loader[T]) Load(ctx context.Context) []T {
	l.mu.RLock()
	if l.state == Loaded {
		items := l.items
		l.mu.RUnlock()
		return items
	}
	l.mu.RUnlock()

	return l.fetch(ctx)
}

// Reload fetches again regardless of state, e.g. after a status change.
func (l *Loader[T]) Reload(ctx context.Context) []T {
	return l.fetch(ctx)
}

func (l *Loader[T]) fetch(ctx context.Context) []T {
	v, _, _ := l.group.Do(l.name, func() (interface{}, error) {
		l.mu.Lock()
		l.state = Loading
		l.mu.Unlock()

		items, err := l.source.Fetch(ctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		l.state = Loaded
		l.lastErr = err
		if err != nil {
			// previous items stay visible
			l.logger.Error("list load failed", zap.Error(err))
			return l.items, nil
		}
		if items == nil {
			items = []T{}
		}
		l.items = items
		l.logger.Debug("list loaded", zap.Int("count", len(items)))
		return items, nil
	})
	return v.([]T)
}

func (l *Loader[T]) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Loader[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items
}

// Err is the error of the most recent fetch, if any.
func (l *Loader[T]) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}
