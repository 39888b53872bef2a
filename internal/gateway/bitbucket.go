package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"devrank/internal/domain"
)

const bitbucketBaseURL = "https://api.bitbucket.org/2.0"

// Bitbucket talks to the Bitbucket 2.0 REST API. There is no official
// Go SDK, so this is a plain JSON client; transient failures are
// retried by the underlying retryable transport.
type Bitbucket struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *logrus.Logger
}

// bitbucketUser is the subset of the /users response the engine needs.
type bitbucketUser struct {
	UUID      string `json:"uuid"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
}

// bitbucketRepoPage is one page of the /repositories listing.
type bitbucketRepoPage struct {
	Values []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"values"`
}

// bitbucketSizePage carries only the collection size, fetched with
// pagelen=0 to count forks and watchers without paging through them.
type bitbucketSizePage struct {
	Size int `json:"size"`
}

// NewBitbucket builds a Bitbucket client. Credentials (username plus
// app password) are optional; without them the client sees only public
// data.
func NewBitbucket(username, password string, logger *logrus.Logger) *Bitbucket {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	return &Bitbucket{
		httpClient: rc.StandardClient(),
		baseURL:    bitbucketBaseURL,
		username:   username,
		password:   password,
		logger:     logger,
	}
}

func (b *Bitbucket) Name() string { return PlatformBitbucket }

// FindUserInfo resolves a handle via /users. A 404 is the not-found
// result.
func (b *Bitbucket) FindUserInfo(ctx context.Context, handle string) (*domain.User, error) {
	var user bitbucketUser
	status, err := b.getJSON(ctx, fmt.Sprintf("/users/%s", handle), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to look up bitbucket user %q: %w", handle, err)
	}
	if status == http.StatusNotFound {
		b.logger.Debugf("bitbucket: user %q not found", handle)
		return nil, nil
	}
	name := user.Username
	if name == "" {
		name = user.Nickname
	}
	if name == "" {
		name = handle
	}
	id := user.AccountID
	if id == "" {
		id = user.UUID
	}
	return domain.NewUser(id, name, PlatformBitbucket), nil
}

// FindUserRepos lists the handle's repositories, then reads each
// repository's fork and watcher collection sizes.
func (b *Bitbucket) FindUserRepos(ctx context.Context, handle string) ([]domain.Repo, error) {
	var page bitbucketRepoPage
	status, err := b.getJSON(ctx, fmt.Sprintf("/repositories/%s?pagelen=100", handle), &page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bitbucket repos for %q: %w", handle, err)
	}
	if status == http.StatusNotFound {
		return []domain.Repo{}, nil
	}
	out := make([]domain.Repo, 0, len(page.Values))
	for _, repo := range page.Values {
		forks, err := b.collectionSize(ctx, handle, repo.Slug, "forks")
		if err != nil {
			return nil, err
		}
		watchers, err := b.collectionSize(ctx, handle, repo.Slug, "watchers")
		if err != nil {
			return nil, err
		}
		out = append(out, domain.NewBitbucketRepo(
			repo.Name,
			domain.CounterOf(float64(forks)),
			domain.CounterOf(float64(watchers)),
		))
	}
	b.logger.Debugf("bitbucket: %d repos for %q", len(out), handle)
	return out, nil
}

func (b *Bitbucket) collectionSize(ctx context.Context, handle, slug, collection string) (int, error) {
	var page bitbucketSizePage
	status, err := b.getJSON(ctx, fmt.Sprintf("/repositories/%s/%s/%s?pagelen=0", handle, slug, collection), &page)
	if err != nil || status == http.StatusNotFound {
		if err == nil {
			err = fmt.Errorf("collection not found")
		}
		return 0, fmt.Errorf("failed to count bitbucket %s for %s/%s: %w", collection, handle, slug, err)
	}
	return page.Size, nil
}

// getJSON performs a GET and decodes the body into out. A 404 is
// reported through the status code, not as an error; any other
// non-2xx status is an error.
func (b *Bitbucket) getJSON(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if b.username != "" {
		req.SetBasicAuth(b.username, b.password)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return http.StatusNotFound, nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("bitbucket API returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}
