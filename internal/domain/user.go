package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidRepoType is returned when something that is not a usable
// repository is handed to AddRepos.
var ErrInvalidRepoType = errors.New("element is not a repository")

// User is one (handle, platform) search result. It owns the handle's
// repositories, kept strictly descending by rating after every
// insertion, with insertion order preserved between equal ratings.
type User struct {
	id       string
	name     string
	platform string
	repos    []ratedRepo
}

// ratedRepo pins the rating a repo sorted under. Repos are immutable,
// so the pinned value always equals recomputation.
type ratedRepo struct {
	repo   Repo
	rating float64
}

// UserData is the serializable form of a User. Repos is a legacy field
// that is always empty; Repo carries the actual repositories and is
// omitted entirely when the user owns none.
type UserData struct {
	Name        string  `json:"name"`
	Platform    string  `json:"platform"`
	TotalRating float64 `json:"total-rating"`
	Repos       []any   `json:"repos"`
	Repo        []any   `json:"repo,omitempty"`
}

// NewUser builds a user result for a handle found on a platform.
func NewUser(id, name, platform string) *User {
	return &User{id: id, name: name, platform: platform}
}

// Name returns the user handle.
func (u *User) Name() string { return u.name }

// Platform returns the label of the platform the user was found on.
func (u *User) Platform() string { return u.platform }

// FullName returns "handle (platform)".
func (u *User) FullName() string {
	return fmt.Sprintf("%s (%s)", u.name, u.platform)
}

// Identifier returns the user id as constructed, with numeric strings
// normalized to integers. Everything else, the empty string included,
// passes through unchanged.
func (u *User) Identifier() any {
	if n, err := strconv.Atoi(u.id); err == nil {
		return n
	}
	return u.id
}

// AddRepos merges repos into the owned list and re-sorts the whole
// list strictly descending by rating. Every element is validated: a
// nil element fails with ErrInvalidRepoType and an uncoercible counter
// surfaces ErrNumericConversion; either way the owned list is left
// untouched.
func (u *User) AddRepos(repos []Repo) error {
	staged := make([]ratedRepo, 0, len(repos))
	for i, r := range repos {
		if r == nil {
			return fmt.Errorf("repo %d: %w", i, ErrInvalidRepoType)
		}
		rating, err := r.Rating()
		if err != nil {
			return fmt.Errorf("repo %d: %w", i, err)
		}
		staged = append(staged, ratedRepo{repo: r, rating: rating})
	}
	u.repos = append(u.repos, staged...)
	sort.SliceStable(u.repos, func(i, j int) bool {
		return u.repos[i].rating > u.repos[j].rating
	})
	return nil
}

// Repos returns the owned repositories in rating order.
func (u *User) Repos() []Repo {
	out := make([]Repo, len(u.repos))
	for i, rr := range u.repos {
		out[i] = rr.repo
	}
	return out
}

// TotalRating sums the ratings of all owned repositories.
func (u *User) TotalRating() float64 {
	var total float64
	for _, rr := range u.repos {
		total += rr.rating
	}
	return total
}

// Data returns the serializable representation of the user and its
// repositories in rating order.
func (u *User) Data() (UserData, error) {
	data := UserData{
		Name:        u.name,
		Platform:    u.platform,
		TotalRating: u.TotalRating(),
		Repos:       []any{},
	}
	for _, rr := range u.repos {
		rd, err := rr.repo.Data()
		if err != nil {
			return UserData{}, err
		}
		data.Repo = append(data.Repo, rd)
	}
	return data, nil
}

// Render returns the display form: a header with the truncated total
// rating and the trophy glyph, a separator rule, then one line per
// repository in rating order. Every line is newline-terminated.
func (u *User) Render() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%-76s%19d \U0001F3C6\n", u.FullName(), int(u.TotalRating()))
	b.WriteString(strings.Repeat("=", 98))
	b.WriteString("\n")
	for _, rr := range u.repos {
		line, err := rr.repo.Render()
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
