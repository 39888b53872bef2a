// Package usecase contains the business logic of the ranking engine.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"devrank/internal/domain"
	"devrank/internal/gateway"
)

// ErrInvalidArgument is returned when a required collection argument
// is nil. Empty collections are valid and yield an empty result.
var ErrInvalidArgument = errors.New("required argument is nil")

// Searcher fans user handles out across platform clients and merges
// the hits into one deterministically ranked list.
type Searcher struct {
	logger *logrus.Logger
}

// NewSearcher creates a new Searcher instance.
func NewSearcher(logger *logrus.Logger) *Searcher {
	return &Searcher{logger: logger}
}

// hit is one found user, tagged with where in the input it was
// discovered so the merge order never depends on goroutine timing.
type hit struct {
	platform int
	handle   int
	user     *domain.User
}

// Search looks every handle up on every platform and returns the found
// users sorted strictly descending by total rating, ties broken by
// discovery order (platform input order, then handle input order).
//
// Platforms run concurrently; within one platform, handles are looked
// up in input order, so each client sees each handle at most once per
// call. A platform lookup failure is downgraded to not-found for that
// pair and logged; it never aborts the rest of the search. Users that
// do not exist or own no repositories are dropped.
func (s *Searcher) Search(ctx context.Context, platforms []gateway.Platform, handles []string) ([]*domain.User, error) {
	if platforms == nil {
		return nil, fmt.Errorf("platforms: %w", ErrInvalidArgument)
	}
	if handles == nil {
		return nil, fmt.Errorf("user handles: %w", ErrInvalidArgument)
	}

	var (
		mu   sync.Mutex
		hits []hit
	)
	eg, egCtx := errgroup.WithContext(ctx)

	for pi, platform := range platforms {
		pi, platform := pi, platform
		eg.Go(func() error {
			for hi, handle := range handles {
				user, err := platform.FindUserInfo(egCtx, handle)
				if err != nil {
					s.logger.Warnf("lookup of %q on %s failed, treating as not found: %v", handle, platform.Name(), err)
					continue
				}
				if user == nil {
					continue
				}
				repos, err := platform.FindUserRepos(egCtx, handle)
				if err != nil {
					s.logger.Warnf("repo listing of %q on %s failed, treating as not found: %v", handle, platform.Name(), err)
					continue
				}
				if len(repos) == 0 {
					// No reportable activity; not a result.
					continue
				}
				if err := user.AddRepos(repos); err != nil {
					return err
				}
				mu.Lock()
				hits = append(hits, hit{platform: pi, handle: hi, user: user})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Re-establish discovery order before ranking so equal ratings tie
	// break identically no matter which goroutine finished first.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].platform != hits[j].platform {
			return hits[i].platform < hits[j].platform
		}
		return hits[i].handle < hits[j].handle
	})
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].user.TotalRating() > hits[j].user.TotalRating()
	})

	users := make([]*domain.User, len(hits))
	for i, h := range hits {
		users[i] = h.user
	}
	return users, nil
}
