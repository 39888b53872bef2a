package domain

import "fmt"

// GitlabRepo is a GitLab project with fork and star counters, rated as
// fork + 0.25·star. The star counter keeps the legacy "start-count"
// key in structured output.
type GitlabRepo struct {
	name  string
	forks Counter
	stars Counter
}

// GitlabRepoData is the serializable form of a GitlabRepo.
type GitlabRepoData struct {
	Name      string  `json:"name"`
	ForkCount any     `json:"fork-count"`
	StarCount any     `json:"start-count"`
	Rating    float64 `json:"rating"`
}

// NewGitlabRepo builds an immutable GitLab repository record.
func NewGitlabRepo(name string, forks, stars Counter) *GitlabRepo {
	return &GitlabRepo{name: name, forks: forks, stars: stars}
}

func (r *GitlabRepo) Name() string { return r.name }

// ForkCount returns the raw fork counter.
func (r *GitlabRepo) ForkCount() Counter { return r.forks }

// StarCount returns the raw star counter.
func (r *GitlabRepo) StarCount() Counter { return r.stars }

// Rating computes fork + 0.25·star.
func (r *GitlabRepo) Rating() (float64, error) {
	f, err := r.forks.Float()
	if err != nil {
		return 0, err
	}
	s, err := r.stars.Float()
	if err != nil {
		return 0, err
	}
	return f + 0.25*s, nil
}

// Data returns the serializable representation, echoing raw counters.
func (r *GitlabRepo) Data() (any, error) {
	rating, err := r.Rating()
	if err != nil {
		return nil, err
	}
	return GitlabRepoData{
		Name:      r.name,
		ForkCount: r.forks.Value(),
		StarCount: r.stars.Value(),
		Rating:    rating,
	}, nil
}

// Render returns the fixed-width display line. GitLab lines carry no
// watcher glyph.
func (r *GitlabRepo) Render() (string, error) {
	f, err := r.forks.Float()
	if err != nil {
		return "", err
	}
	s, err := r.stars.Float()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%-76s%4d ⇅ %4d ★", r.name, int(f), int(s)), nil
}
