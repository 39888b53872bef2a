// Package server exposes the search engine over HTTP. It is a thin
// shim: parameter parsing and rendering only, with all logic behind
// the searcher.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"devrank/internal/domain"
	"devrank/internal/gateway"
)

// PlatformResolver maps platform names to client instances; the
// gateway factory satisfies it.
type PlatformResolver interface {
	Create(name string) (gateway.Platform, error)
}

// UserSearcher runs the actual search; the usecase searcher satisfies
// it.
type UserSearcher interface {
	Search(ctx context.Context, platforms []gateway.Platform, handles []string) ([]*domain.User, error)
}

// Server wires the HTTP routes to the search engine.
type Server struct {
	engine   *gin.Engine
	resolver PlatformResolver
	searcher UserSearcher
	logger   *logrus.Logger
}

// New builds the HTTP server and registers its routes.
func New(resolver PlatformResolver, searcher UserSearcher, logger *logrus.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		resolver: resolver,
		searcher: searcher,
		logger:   logger,
	}
	engine.GET("/api/search", s.handleSearch)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// handleSearch serves GET /api/search?users=...&platforms=....
// Both parameters accept repeated and comma-separated values. Missing
// parameters are a 400 with the canonical message; an unrecognized
// platform token is a server fault, not a client error.
func (s *Server) handleSearch(c *gin.Context) {
	users := splitParams(c.QueryArray("users"))
	platformNames := splitParams(c.QueryArray("platforms"))

	var missing []string
	if len(users) == 0 {
		missing = append(missing, "users")
	}
	if len(platformNames) == 0 {
		missing = append(missing, "platforms")
	}
	if len(missing) > 0 {
		c.String(http.StatusBadRequest, "Missing required parameters: %s", strings.Join(missing, ", "))
		return
	}

	platforms := make([]gateway.Platform, 0, len(platformNames))
	for _, name := range platformNames {
		p, err := s.resolver.Create(name)
		if err != nil {
			s.logger.Errorf("platform resolution failed: %v", err)
			c.String(http.StatusInternalServerError, "%v", err)
			return
		}
		platforms = append(platforms, p)
	}

	results, err := s.searcher.Search(c.Request.Context(), platforms, users)
	if err != nil {
		s.logger.Errorf("search failed: %v", err)
		c.String(http.StatusInternalServerError, "%v", err)
		return
	}

	if c.Query("format") == "text" {
		var b strings.Builder
		for _, user := range results {
			block, err := user.Render()
			if err != nil {
				c.String(http.StatusInternalServerError, "%v", err)
				return
			}
			b.WriteString(block)
		}
		c.String(http.StatusOK, b.String())
		return
	}

	payload := make([]domain.UserData, 0, len(results))
	for _, user := range results {
		data, err := user.Data()
		if err != nil {
			c.String(http.StatusInternalServerError, "%v", err)
			return
		}
		payload = append(payload, data)
	}
	c.JSON(http.StatusOK, payload)
}

// splitParams flattens repeated query values and comma-separated
// lists, dropping empty entries.
func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
