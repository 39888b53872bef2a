package domain

import "fmt"

// GithubRepo is a GitHub repository with fork, star and watcher
// counters. Its rating weighs forks highest: (4·fork + star + 2·watcher) / 6.
type GithubRepo struct {
	name     string
	forks    Counter
	stars    Counter
	watchers Counter
}

// GithubRepoData is the serializable form of a GithubRepo.
type GithubRepoData struct {
	Name         string  `json:"name"`
	ForkCount    any     `json:"fork-count"`
	StarCount    any     `json:"start-count"`
	WatcherCount any     `json:"watcher-count"`
	Rating       float64 `json:"rating"`
}

// NewGithubRepo builds an immutable GitHub repository record.
func NewGithubRepo(name string, forks, stars, watchers Counter) *GithubRepo {
	return &GithubRepo{name: name, forks: forks, stars: stars, watchers: watchers}
}

func (r *GithubRepo) Name() string { return r.name }

// ForkCount returns the raw fork counter.
func (r *GithubRepo) ForkCount() Counter { return r.forks }

// StarCount returns the raw star counter.
func (r *GithubRepo) StarCount() Counter { return r.stars }

// WatcherCount returns the raw watcher counter.
func (r *GithubRepo) WatcherCount() Counter { return r.watchers }

// Rating computes (4·fork + star + 2·watcher) / 6.
func (r *GithubRepo) Rating() (float64, error) {
	f, err := r.forks.Float()
	if err != nil {
		return 0, err
	}
	s, err := r.stars.Float()
	if err != nil {
		return 0, err
	}
	w, err := r.watchers.Float()
	if err != nil {
		return 0, err
	}
	return (4*f + s + 2*w) / 6, nil
}

// Data returns the serializable representation, echoing raw counters.
func (r *GithubRepo) Data() (any, error) {
	rating, err := r.Rating()
	if err != nil {
		return nil, err
	}
	return GithubRepoData{
		Name:         r.name,
		ForkCount:    r.forks.Value(),
		StarCount:    r.stars.Value(),
		WatcherCount: r.watchers.Value(),
		Rating:       rating,
	}, nil
}

// Render returns the fixed-width display line with fork, star and
// watcher glyphs.
func (r *GithubRepo) Render() (string, error) {
	f, err := r.forks.Float()
	if err != nil {
		return "", err
	}
	s, err := r.stars.Float()
	if err != nil {
		return "", err
	}
	w, err := r.watchers.Float()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%-76s%4d ⇅ %4d ★ %4d \U0001F441️", r.name, int(f), int(s), int(w)), nil
}
