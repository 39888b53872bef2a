package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devrank/internal/domain"
	"devrank/internal/gateway"
)

// mockPlatform is a mock implementation of the gateway.Platform
// interface for testing.
type mockPlatform struct {
	mock.Mock
	name string
}

func (m *mockPlatform) Name() string { return m.name }

func (m *mockPlatform) FindUserInfo(ctx context.Context, handle string) (*domain.User, error) {
	args := m.Called(ctx, handle)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *mockPlatform) FindUserRepos(ctx context.Context, handle string) ([]domain.Repo, error) {
	args := m.Called(ctx, handle)
	var repos []domain.Repo
	if args.Get(0) != nil {
		repos = args.Get(0).([]domain.Repo)
	}
	return repos, args.Error(1)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSearcher_SearchSinglePlatform(t *testing.T) {
	platform := &mockPlatform{name: "github"}
	platform.On("FindUserInfo", mock.Anything, "fusionjack").
		Return(domain.NewUser("1", "fusionjack", "github"), nil)
	platform.On("FindUserRepos", mock.Anything, "fusionjack").
		Return([]domain.Repo{
			domain.NewGithubRepo("slimota", domain.CounterOf(1), domain.CounterOf(2), domain.CounterOf(3)),
		}, nil)

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(context.Background(), []gateway.Platform{platform}, []string{"fusionjack"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fusionjack", results[0].Name())
	assert.InDelta(t, 2.0, results[0].TotalRating(), 1e-9)
	platform.AssertExpectations(t)
}

func TestSearcher_SearchRanksAcrossPlatforms(t *testing.T) {
	github := &mockPlatform{name: "github"}
	github.On("FindUserInfo", mock.Anything, "fusionjack").
		Return(domain.NewUser("1", "fusionjack", "github"), nil)
	github.On("FindUserRepos", mock.Anything, "fusionjack").
		Return([]domain.Repo{
			domain.NewGithubRepo("slimota", domain.CounterOf(1), domain.CounterOf(2), domain.CounterOf(3)),
		}, nil)

	gitlab := &mockPlatform{name: "gitlab"}
	gitlab.On("FindUserInfo", mock.Anything, "fusionjack").
		Return(domain.NewUser("2", "fusionjack", "gitlab"), nil)
	gitlab.On("FindUserRepos", mock.Anything, "fusionjack").
		Return([]domain.Repo{
			domain.NewGitlabRepo("adhell3", domain.CounterOf(10), domain.CounterOf(22)),
		}, nil)

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(context.Background(), []gateway.Platform{github, gitlab}, []string{"fusionjack"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "gitlab", results[0].Platform())
	assert.InDelta(t, 15.5, results[0].TotalRating(), 1e-9)
	assert.Equal(t, "github", results[1].Platform())
	assert.InDelta(t, 2.0, results[1].TotalRating(), 1e-9)
}

func TestSearcher_SearchEmptyInputs(t *testing.T) {
	platform := &mockPlatform{name: "github"}
	searcher := NewSearcher(newTestLogger())

	results, err := searcher.Search(context.Background(), []gateway.Platform{}, []string{"fusionjack"})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = searcher.Search(context.Background(), []gateway.Platform{platform}, []string{})
	require.NoError(t, err)
	assert.Empty(t, results)
	platform.AssertNotCalled(t, "FindUserInfo", mock.Anything, mock.Anything)
}

func TestSearcher_SearchNilInputs(t *testing.T) {
	searcher := NewSearcher(newTestLogger())

	_, err := searcher.Search(context.Background(), nil, []string{"fusionjack"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = searcher.Search(context.Background(), []gateway.Platform{}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSearcher_SearchExcludesUserWithoutRepos(t *testing.T) {
	platform := &mockPlatform{name: "github"}
	platform.On("FindUserInfo", mock.Anything, "idle").
		Return(domain.NewUser("1", "idle", "github"), nil)
	platform.On("FindUserRepos", mock.Anything, "idle").
		Return([]domain.Repo{}, nil)

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(context.Background(), []gateway.Platform{platform}, []string{"idle"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearcher_SearchExcludesNotFoundUser(t *testing.T) {
	platform := &mockPlatform{name: "github"}
	platform.On("FindUserInfo", mock.Anything, "nobody").Return(nil, nil)

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(context.Background(), []gateway.Platform{platform}, []string{"nobody"})

	require.NoError(t, err)
	assert.Empty(t, results)
	platform.AssertNotCalled(t, "FindUserRepos", mock.Anything, mock.Anything)
}

func TestSearcher_SearchDowngradesPlatformFailures(t *testing.T) {
	broken := &mockPlatform{name: "github"}
	broken.On("FindUserInfo", mock.Anything, "fusionjack").
		Return(nil, errors.New("connection refused"))

	working := &mockPlatform{name: "gitlab"}
	working.On("FindUserInfo", mock.Anything, "fusionjack").
		Return(domain.NewUser("2", "fusionjack", "gitlab"), nil)
	working.On("FindUserRepos", mock.Anything, "fusionjack").
		Return([]domain.Repo{
			domain.NewGitlabRepo("adhell3", domain.CounterOf(180), domain.CounterOf(469)),
		}, nil)

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(context.Background(), []gateway.Platform{broken, working}, []string{"fusionjack"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gitlab", results[0].Platform())
}

func TestSearcher_SearchRepoListingFailureSkipsUser(t *testing.T) {
	platform := &mockPlatform{name: "github"}
	platform.On("FindUserInfo", mock.Anything, "fusionjack").
		Return(domain.NewUser("1", "fusionjack", "github"), nil)
	platform.On("FindUserRepos", mock.Anything, "fusionjack").
		Return(nil, errors.New("rate limited"))

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(context.Background(), []gateway.Platform{platform}, []string{"fusionjack"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearcher_SearchTieBreaksByDiscoveryOrder(t *testing.T) {
	repos := func() []domain.Repo {
		return []domain.Repo{
			domain.NewGithubRepo("same", domain.CounterOf(3), domain.CounterOf(3), domain.CounterOf(3)),
		}
	}

	first := &mockPlatform{name: "github"}
	first.On("FindUserInfo", mock.Anything, "alice").
		Return(domain.NewUser("1", "alice", "github"), nil)
	first.On("FindUserInfo", mock.Anything, "bob").
		Return(domain.NewUser("2", "bob", "github"), nil)
	first.On("FindUserRepos", mock.Anything, mock.Anything).Return(repos(), nil)

	second := &mockPlatform{name: "gitlab"}
	second.On("FindUserInfo", mock.Anything, "alice").
		Return(domain.NewUser("3", "alice", "gitlab"), nil)
	second.On("FindUserInfo", mock.Anything, "bob").
		Return(domain.NewUser("4", "bob", "gitlab"), nil)
	second.On("FindUserRepos", mock.Anything, mock.Anything).Return(repos(), nil)

	searcher := NewSearcher(newTestLogger())
	results, err := searcher.Search(
		context.Background(),
		[]gateway.Platform{first, second},
		[]string{"alice", "bob"},
	)

	require.NoError(t, err)
	require.Len(t, results, 4)
	got := make([]string, len(results))
	for i, user := range results {
		got[i] = user.Name() + "/" + user.Platform()
	}
	assert.Equal(t, []string{"alice/github", "bob/github", "alice/gitlab", "bob/gitlab"}, got)
}
