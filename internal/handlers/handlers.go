package handlers

import (
	"github.com/emilythestrangee/bloglite/backend/internal/auth"
	"github.com/emilythestrangee/bloglite/backend/internal/metrics"
	"github.com/emilythestrangee/bloglite/backend/internal/middleware"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

// Services bundles what the handlers depend on.
type Services struct {
	Identity *service.IdentityService
	Graph    *service.FollowService
	Feed     *service.FeedService
	Posts    *service.PostService
	Search   *service.SearchService
	Tokens   *auth.TokenManager
	Sessions *middleware.Sessions
	Metrics  *metrics.Metrics
}

// Handler combines all handler types
type Handler struct {
	Auth *AuthHandler
	Feed *FeedHandler
	Post *PostHandler
	User *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(s Services) *Handler {
	r := responder{sessions: s.Sessions}

	return &Handler{
		Auth: &AuthHandler{responder: r, identity: s.Identity, tokens: s.Tokens},
		Feed: &FeedHandler{responder: r, feed: s.Feed},
		Post: &PostHandler{responder: r, posts: s.Posts, graph: s.Graph, metrics: s.Metrics},
		User: &UserHandler{responder: r, graph: s.Graph, search: s.Search, metrics: s.Metrics},
	}
}
