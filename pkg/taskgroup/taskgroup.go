/*
Package taskgroup runs batches of independent, fallible lookups with a
bounded worker pool. Each task is keyed by a caller-supplied identity;
results are folded into the output map only by the collecting
goroutine, so tasks never share mutable state.
*/
package taskgroup

import (
	"fmt"
	"sync"
)

// PanicError reports a task that panicked instead of returning.
type PanicError struct {
	Key   any
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task for key %v panicked: %v", e.Key, e.Value)
}

type result[K comparable, V any] struct {
	key   K
	value V
	err   error
}

// Collect runs fn once per key with at most limit workers in flight
// and returns the successful results keyed by input key. A task that
// returns an error (or panics) contributes nothing; onErr, if non-nil,
// is invoked for it from the collecting goroutine. limit is clamped to
// at least 1.
func Collect[K comparable, V any](keys []K, limit int, fn func(K) (V, error), onErr func(K, error)) map[K]V {
	if limit < 1 {
		limit = 1
	}

	var wg sync.WaitGroup
	// Buffered so a finished worker never blocks behind the collector;
	// submission holds the semaphore and would otherwise deadlock.
	resultChan := make(chan result[K, V], len(keys))
	sem := make(chan struct{}, limit)

	for _, key := range keys {
		wg.Add(1)
		sem <- struct{}{}

		go func(k K) {
			defer wg.Done()
			defer func() { <-sem }()

			value, err := runTask(k, fn)
			resultChan <- result[K, V]{key: k, value: value, err: err}
		}(key)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	out := make(map[K]V, len(keys))
	for res := range resultChan {
		if res.err != nil {
			if onErr != nil {
				onErr(res.key, res.err)
			}
			continue
		}
		out[res.key] = res.value
	}
	return out
}

// runTask isolates a single task so a panic degrades that key instead
// of tearing down the batch.
func runTask[K comparable, V any](key K, fn func(K) (V, error)) (value V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Key: key, Value: r}
		}
	}()
	return fn(key)
}
