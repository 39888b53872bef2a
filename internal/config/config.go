// Package config loads runtime configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the gateways and the HTTP server need.
// All credentials are optional; without them the platform clients run
// unauthenticated against the public APIs.
type Config struct {
	GithubToken          string
	GitlabToken          string
	BitbucketUsername    string
	BitbucketAppPassword string
	ListenAddr           string
	HTTPTimeout          time.Duration
}

// Load reads configuration from environment variables. Hyphenated keys
// map to underscored variables, so e.g. the listen address comes from
// DEVRANK_LISTEN_ADDR.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("DEVRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Platform credentials keep their conventional names.
	v.BindEnv("github-token", "GITHUB_TOKEN")
	v.BindEnv("gitlab-token", "GITLAB_TOKEN")
	v.BindEnv("bitbucket-username", "BITBUCKET_USERNAME")
	v.BindEnv("bitbucket-app-password", "BITBUCKET_APP_PASSWORD")

	v.SetDefault("listen-addr", ":8080")
	v.SetDefault("http-timeout", 30*time.Second)

	return &Config{
		GithubToken:          v.GetString("github-token"),
		GitlabToken:          v.GetString("gitlab-token"),
		BitbucketUsername:    v.GetString("bitbucket-username"),
		BitbucketAppPassword: v.GetString("bitbucket-app-password"),
		ListenAddr:           v.GetString("listen-addr"),
		HTTPTimeout:          v.GetDuration("http-timeout"),
	}
}
