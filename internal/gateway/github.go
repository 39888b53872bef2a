package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"devrank/internal/domain"
)

// Github talks to the GitHub API: the user lookup goes through the
// GraphQL client, the repository listing through REST.
type Github struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *logrus.Logger
}

// userLookupQuery resolves a login to its account id.
type userLookupQuery struct {
	User struct {
		DatabaseID githubv4.Int
		Login      githubv4.String
	} `graphql:"user(login: $login)"`
}

// NewGithub builds a GitHub client. The token is optional; without one
// the client runs unauthenticated. Rate-limit sleeps are capped so a
// throttled client fails instead of stalling a search forever.
func NewGithub(token string, logger *logrus.Logger) (*Github, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	return &Github{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *Github) Name() string { return PlatformGithub }

// FindUserInfo resolves a handle with a GraphQL lookup. An unresolved
// login is the not-found result.
func (g *Github) FindUserInfo(ctx context.Context, handle string) (*domain.User, error) {
	variables := map[string]interface{}{"login": githubv4.String(handle)}
	var q userLookupQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		// githubv4 surfaces missing users as a plain GraphQL error.
		if strings.Contains(err.Error(), "Could not resolve to a User") {
			g.logger.Debugf("github: user %q not found", handle)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up github user %q: %w", handle, err)
	}
	id := strconv.Itoa(int(q.User.DatabaseID))
	return domain.NewUser(id, string(q.User.Login), PlatformGithub), nil
}

// FindUserRepos lists the handle's repositories with the REST API.
func (g *Github) FindUserRepos(ctx context.Context, handle string) ([]domain.Repo, error) {
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: 100}}
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, handle, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return []domain.Repo{}, nil
		}
		return nil, fmt.Errorf("failed to list github repos for %q: %w", handle, err)
	}
	out := make([]domain.Repo, 0, len(repos))
	for _, r := range repos {
		out = append(out, domain.NewGithubRepo(
			r.GetName(),
			domain.CounterOf(float64(r.GetForksCount())),
			domain.CounterOf(float64(r.GetStargazersCount())),
			domain.CounterOf(float64(r.GetWatchersCount())),
		))
	}
	g.logger.Debugf("github: %d repos for %q", len(out), handle)
	return out, nil
}
