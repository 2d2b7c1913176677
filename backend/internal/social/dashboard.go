package social

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Dashboard computes the popular, activity and topic views concurrently while
// holding a single read lock, so all three describe the same graph state.
func (e *Engine) Dashboard(ctx context.Context) (*Dashboard, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d := &Dashboard{
		Users: len(e.users),
		Posts: len(e.posts),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d.Popular = e.popularPostsLocked()
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d.Activity = e.userActivityLocked()
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		d.Topics = e.topicStatsLocked()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
