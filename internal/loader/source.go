package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FixtureSource returns a fixed list after an artificial delay.
type FixtureSource[T any] struct {
	Items []T
	Delay time.Duration
}

func (s FixtureSource[T]) Fetch(ctx context.Context) ([]T, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	out := make([]T, len(s.Items))
	copy(out, s.Items)
	return out, nil
}

// HTTPSource GETs a list endpoint answering {"<Key>": [...]}, or a bare
// array when Key is empty.
type HTTPSource[T any] struct {
	Client *http.Client
	URL    string
	Key    string
	Header http.Header
}

func (s HTTPSource[T]) Fetch(ctx context.Context) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range s.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", s.URL, resp.StatusCode)
	}

	if s.Key == "" {
		var items []T
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	var items []T
	if raw, ok := body[s.Key]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Named labels a source for LoadAll logging.
type Named[T any] struct {
	Name   string
	Source Source[T]
}

// LoadAll fetches every source concurrently and waits for all of them.
// A failed source is logged and contributes nothing; the others are merged
// in argument order.
func LoadAll[T any](ctx context.Context, logger *zap.Logger, sources ...Named[T]) []T {
	if logger == nil {
		logger = zap.L()
	}

	results := make([][]T, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		i, src := i, src
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := src.Source.Fetch(ctx)
			if err != nil {
				logger.Error("list load failed", zap.String("source", src.Name), zap.Error(err))
				return
			}
			results[i] = items
		}()
	}
	wg.Wait()

	out := []T{}
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
