package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/middleware"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

type FeedHandler struct {
	responder
	feed *service.FeedService
}

// Home handles GET / and GET /home.
func (h *FeedHandler) Home(c *gin.Context) {
	posts, err := h.feed.HomeFeed(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, gin.H{
		"user":  middleware.CurrentUser(c).Summary(),
		"posts": posts,
	})
}
