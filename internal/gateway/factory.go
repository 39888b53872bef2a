package gateway

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"devrank/internal/config"
)

// Recognized platform tokens. Matching is exact: wrong case or unknown
// names are rejected.
const (
	PlatformGithub    = "github"
	PlatformGitlab    = "gitlab"
	PlatformBitbucket = "bitbucket"
)

// ErrUnknownPlatform is returned for any name outside the recognized
// token set.
var ErrUnknownPlatform = errors.New("unknown platform")

// Factory creates platform clients and memoizes them: one shared
// instance per recognized name for the lifetime of the factory,
// created lazily and never evicted. Create is safe for concurrent use.
type Factory struct {
	cfg    *config.Config
	logger *logrus.Logger

	mu    sync.Mutex
	cache map[string]Platform
	order []string
}

// NewFactory builds a factory with an empty cache.
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
		cache:  make(map[string]Platform),
	}
}

// Create returns the client for a platform name, building it on first
// use and the cached instance afterwards.
func (f *Factory) Create(name string) (Platform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.cache[name]; ok {
		return p, nil
	}

	var (
		p   Platform
		err error
	)
	switch name {
	case PlatformGithub:
		p, err = NewGithub(f.cfg.GithubToken, f.logger)
	case PlatformGitlab:
		p, err = NewGitlab(f.cfg.GitlabToken, f.logger)
	case PlatformBitbucket:
		p = NewBitbucket(f.cfg.BitbucketUsername, f.cfg.BitbucketAppPassword, f.logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", name, err)
	}

	f.cache[name] = p
	f.order = append(f.order, name)
	return p, nil
}

// Platforms returns the cached platform names in first-creation order.
func (f *Factory) Platforms() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
