package gateway

import (
	"errors"
	"iter"
	"sync/atomic"
)

// ErrStreamConsumed is yielded when a single-use stream is ranged over a second time.
var ErrStreamConsumed = errors.New("stream already consumed")

// Once wraps seq so it can be ranged over only once. Later ranges yield a single
// ErrStreamConsumed and stop, so a finished search is never silently re-run.
func Once[V any](seq iter.Seq2[V, error]) iter.Seq2[V, error] {
	var used atomic.Bool
	return func(yield func(V, error) bool) {
		if used.Swap(true) {
			var zero V
			yield(zero, ErrStreamConsumed)
			return
		}
		seq(yield)
	}
}

// Collect drains seq, keeping records and errors in arrival order. It returns only
// after seq reports its end.
func Collect[V any](seq iter.Seq2[V, error]) ([]V, []error) {
	records := []V{}
	errs := []error{}
	for v, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, v)
	}
	return records, errs
}
