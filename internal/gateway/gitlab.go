package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	gogitlab "gitlab.com/gitlab-org/api/client-go"

	"devrank/internal/domain"
)

// Gitlab talks to the GitLab REST API through the official client.
type Gitlab struct {
	client *gogitlab.Client
	logger *logrus.Logger
}

// NewGitlab builds a GitLab client. The token is optional; without one
// the client sees only public users and projects.
func NewGitlab(token string, logger *logrus.Logger) (*Gitlab, error) {
	client, err := gogitlab.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	return &Gitlab{client: client, logger: logger}, nil
}

func (g *Gitlab) Name() string { return PlatformGitlab }

// FindUserInfo resolves a handle with an exact username search. An
// empty result set is the not-found result.
func (g *Gitlab) FindUserInfo(ctx context.Context, handle string) (*domain.User, error) {
	users, _, err := g.client.Users.ListUsers(
		&gogitlab.ListUsersOptions{Username: gogitlab.Ptr(handle)},
		gogitlab.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up gitlab user %q: %w", handle, err)
	}
	if len(users) == 0 {
		g.logger.Debugf("gitlab: user %q not found", handle)
		return nil, nil
	}
	user := users[0]
	return domain.NewUser(strconv.Itoa(user.ID), user.Username, PlatformGitlab), nil
}

// FindUserRepos lists the handle's projects.
func (g *Gitlab) FindUserRepos(ctx context.Context, handle string) ([]domain.Repo, error) {
	projects, resp, err := g.client.Projects.ListUserProjects(
		handle,
		&gogitlab.ListProjectsOptions{ListOptions: gogitlab.ListOptions{PerPage: 100}},
		gogitlab.WithContext(ctx),
	)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return []domain.Repo{}, nil
		}
		return nil, fmt.Errorf("failed to list gitlab projects for %q: %w", handle, err)
	}
	out := make([]domain.Repo, 0, len(projects))
	for _, p := range projects {
		out = append(out, domain.NewGitlabRepo(
			p.Name,
			domain.CounterOf(float64(p.ForksCount)),
			domain.CounterOf(float64(p.StarCount)),
		))
	}
	g.logger.Debugf("gitlab: %d projects for %q", len(out), handle)
	return out, nil
}
