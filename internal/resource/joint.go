package resource

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Loader is anything that can (re)load its mirror.
type Loader interface {
	Load(ctx context.Context) error
}

// LoadAll issues every load concurrently and waits for all of them to
// settle. The joint operation fails when any single load fails; siblings
// are not canceled so each mirror records its own outcome.
func LoadAll(ctx context.Context, loaders ...Loader) error {
	var g errgroup.Group
	for _, l := range loaders {
		if l == nil {
			continue
		}
		l := l
		g.Go(func() error {
			return l.Load(ctx)
		})
	}
	return g.Wait()
}
