package concurrent

import (
	"context"

	"github.com/zeusync/entitypool/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// ConcurrentContext runs action for each element of the iterator in its own goroutine
// and waits for all of them. The context passed to action is cancelled as soon as one
// action fails, and the first error is returned. At most limit actions run at once;
// limit <= 0 means no limit.
func ConcurrentContext[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	errGroup, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGroup.SetLimit(limit)
	}
	next, stop := i.Pull()
	defer stop()

	cancelled := false
	for {
		value, valid := next()
		if !valid {
			break
		}
		if gctx.Err() != nil {
			cancelled = true
			break
		}

		errGroup.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return action(gctx, value)
		})
	}

	if err := errGroup.Wait(); err != nil {
		return err
	}
	if cancelled {
		return ctx.Err()
	}
	return nil
}
