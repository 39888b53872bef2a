// Package gateway provides the platform clients that talk to the
// GitHub, GitLab and Bitbucket APIs, the port they all satisfy, and
// the factory that hands out one shared client per platform.
package gateway

import (
	"context"

	"devrank/internal/domain"
)

// Platform is the capability contract a hosting platform client
// satisfies. A handle that does not exist on the platform is the
// (nil, nil) result from FindUserInfo, never an error; a user without
// repositories is the empty slice from FindUserRepos, never an error.
type Platform interface {
	// Name returns the canonical lowercase platform token.
	Name() string
	// FindUserInfo looks a handle up on the platform.
	FindUserInfo(ctx context.Context, handle string) (*domain.User, error)
	// FindUserRepos lists the handle's repositories.
	FindUserRepos(ctx context.Context, handle string) ([]domain.Repo, error)
}
