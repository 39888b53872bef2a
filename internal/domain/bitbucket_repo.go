package domain

import "fmt"

// BitbucketRepo is a Bitbucket repository with fork and watcher
// counters, rated as fork + 0.5·watcher.
type BitbucketRepo struct {
	name     string
	forks    Counter
	watchers Counter
}

// BitbucketRepoData is the serializable form of a BitbucketRepo.
type BitbucketRepoData struct {
	Name         string  `json:"name"`
	ForkCount    any     `json:"fork-count"`
	WatcherCount any     `json:"watcher-count"`
	Rating       float64 `json:"rating"`
}

// NewBitbucketRepo builds an immutable Bitbucket repository record.
func NewBitbucketRepo(name string, forks, watchers Counter) *BitbucketRepo {
	return &BitbucketRepo{name: name, forks: forks, watchers: watchers}
}

func (r *BitbucketRepo) Name() string { return r.name }

// ForkCount returns the raw fork counter.
func (r *BitbucketRepo) ForkCount() Counter { return r.forks }

// WatcherCount returns the raw watcher counter.
func (r *BitbucketRepo) WatcherCount() Counter { return r.watchers }

// Rating computes fork + 0.5·watcher.
func (r *BitbucketRepo) Rating() (float64, error) {
	f, err := r.forks.Float()
	if err != nil {
		return 0, err
	}
	w, err := r.watchers.Float()
	if err != nil {
		return 0, err
	}
	return f + 0.5*w, nil
}

// Data returns the serializable representation, echoing raw counters.
func (r *BitbucketRepo) Data() (any, error) {
	rating, err := r.Rating()
	if err != nil {
		return nil, err
	}
	return BitbucketRepoData{
		Name:         r.name,
		ForkCount:    r.forks.Value(),
		WatcherCount: r.watchers.Value(),
		Rating:       rating,
	}, nil
}

// Render returns the fixed-width display line. Bitbucket lines omit
// the star glyph; the watcher column absorbs its width.
func (r *BitbucketRepo) Render() (string, error) {
	f, err := r.forks.Float()
	if err != nil {
		return "", err
	}
	w, err := r.watchers.Float()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%-76s%4d ⇅ %11d \U0001F441️", r.name, int(f), int(w)), nil
}
