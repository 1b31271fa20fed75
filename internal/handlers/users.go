package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/metrics"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

type UserHandler struct {
	responder
	graph   *service.FollowService
	search  *service.SearchService
	metrics *metrics.Metrics
}

// FollowUser handles GET and POST /follow/:username.
func (h *UserHandler) FollowUser(c *gin.Context) {
	target, err := h.graph.Follow(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.FollowRequests.Inc()
	h.flash(c, "You are now following this user!")
	h.relation(c, target, true)
}

// UnfollowUser handles GET and POST /unfollow/:username.
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	target, err := h.graph.Unfollow(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.UnfollowRequests.Inc()
	h.flash(c, "You have unfollowed this user")
	h.relation(c, target, false)
}

func (h *UserHandler) relation(c *gin.Context, target *models.User, following bool) {
	counts, err := h.graph.Counts(c.Request.Context(), target.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, gin.H{
		"user":         target.Summary(),
		"is_following": following,
		"followers":    counts.Followers,
		"following":    counts.Following,
	})
}

// GetFollowers handles GET and POST /followers/:username.
func (h *UserHandler) GetFollowers(c *gin.Context) {
	username := c.Param("username")
	users, err := h.graph.ListFollowers(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, gin.H{"username": username, "followers": summaries(users)})
}

// GetFollowing handles GET and POST /following/:username.
func (h *UserHandler) GetFollowing(c *gin.Context) {
	username := c.Param("username")
	users, err := h.graph.ListFollowing(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, gin.H{"username": username, "following": summaries(users)})
}

// SearchForm handles GET /search.
func (h *UserHandler) SearchForm(c *gin.Context) {
	h.ok(c, form("search", "username"))
}

// Search handles POST /search.
func (h *UserHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "Invalid search form")
		return
	}

	users, err := h.search.Users(c.Request.Context(), req.Username)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, gin.H{"query": req.Username, "users": summaries(users)})
}

func summaries(users []models.User) []models.UserSummary {
	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out
}
