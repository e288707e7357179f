// Package pipeline provides channel-based stream operators. Every operator
// runs one goroutine that owns and eventually closes its output channel;
// cancelling ctx stops it.
package pipeline

import (
	"context"
	"sync"
	"time"
)

// Debounce emits a value only after wait has passed without a newer one
// arriving. A pending value is flushed when in closes.
func Debounce[T any](ctx context.Context, in <-chan T, wait time.Duration) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			pending T
			has     bool
			timer   *time.Timer
			fire    <-chan time.Time
		)
		stopTimer := func() {
			if timer != nil {
				timer.Stop()
			}
			fire = nil
		}
		defer stopTimer()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					stopTimer()
					if has {
						send(ctx, out, pending)
					}
					return
				}
				pending, has = v, true
				stopTimer()
				timer = time.NewTimer(wait)
				fire = timer.C
			case <-fire:
				fire = nil
				v := pending
				var zero T
				pending, has = zero, false
				if !send(ctx, out, v) {
					return
				}
			}
		}
	}()

	return out
}

// DistinctUntilChanged drops values equal to the previously emitted one.
func DistinctUntilChanged[T any](ctx context.Context, in <-chan T, equal func(prev, curr T) bool) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			last T
			seen bool
		)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				if seen && equal(last, v) {
					continue
				}
				last, seen = v, true
				if !send(ctx, out, v) {
					return
				}
			}
		}
	}()

	return out
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](ctx context.Context, in <-chan T, keep func(T) bool) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				if !keep(v) {
					continue
				}
				if !send(ctx, out, v) {
					return
				}
			}
		}
	}()

	return out
}

type generation[R any] struct {
	id  uint64
	val R
}

// SwitchMap runs fn for every input value. A new input cancels the context
// of the still running call and its result is discarded, so the output only
// ever carries the result for the latest input. The output closes once in
// is closed and the last call has delivered.
func SwitchMap[T, R any](ctx context.Context, in <-chan T, fn func(context.Context, T) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var (
			wg      sync.WaitGroup
			current uint64
			active  bool
			cancel  context.CancelFunc = func() {}
		)
		results := make(chan generation[R])
		defer func() {
			cancel()
			wg.Wait()
		}()

		for {
			if in == nil && !active {
				return
			}

			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				cancel()
				current++
				active = true

				innerCtx, innerCancel := context.WithCancel(ctx)
				cancel = innerCancel
				id := current

				wg.Add(1)
				go func() {
					defer wg.Done()
					r := fn(innerCtx, v)
					select {
					case results <- generation[R]{id: id, val: r}:
					case <-innerCtx.Done():
					}
				}()
			case r := <-results:
				if r.id != current {
					continue
				}
				active = false
				if !send(ctx, out, r.val) {
					return
				}
			}
		}
	}()

	return out
}

func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
