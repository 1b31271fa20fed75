package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/metrics"
	"github.com/emilythestrangee/bloglite/backend/internal/middleware"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
	"github.com/emilythestrangee/bloglite/backend/internal/service"
)

type PostHandler struct {
	responder
	posts   *service.PostService
	graph   *service.FollowService
	metrics *metrics.Metrics
}

var postFields = []string{"title", "text", "image"}

// CreateForm handles GET /create_post.
func (h *PostHandler) CreateForm(c *gin.Context) {
	h.ok(c, form("create_post", postFields...))
}

// CreatePost creates a post owned by the caller.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "Invalid post form")
		return
	}

	post, err := h.posts.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.PostsCreated.Inc()
	h.flash(c, "Post successfully created!")
	h.created(c, post)
}

// MyProfile handles GET /myprofile.
func (h *PostHandler) MyProfile(c *gin.Context) {
	h.profile(c, middleware.CurrentUser(c).Username)
}

// Profile handles GET /profile/:username.
func (h *PostHandler) Profile(c *gin.Context) {
	h.profile(c, c.Param("username"))
}

func (h *PostHandler) profile(c *gin.Context, username string) {
	ctx := c.Request.Context()

	user, posts, err := h.posts.ListByAuthor(ctx, username)
	if err != nil {
		h.fail(c, err)
		return
	}

	counts, err := h.graph.Counts(ctx, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	viewer := middleware.CurrentUser(c)
	following, err := h.graph.IsFollowing(ctx, viewer.ID, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, gin.H{
		"user":         user.Summary(),
		"posts":        posts,
		"followers":    counts.Followers,
		"following":    counts.Following,
		"is_following": following,
		"is_self":      viewer.ID == user.ID,
	})
}

// EditForm handles GET /edit_post/:id and returns the current post.
func (h *PostHandler) EditForm(c *gin.Context) {
	h.show(c, func(post *models.Post) gin.H {
		return gin.H{"form": "edit_post", "fields": postFields, "post": post}
	})
}

// EditPost updates a post owned by the caller.
func (h *PostHandler) EditPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}

	var req models.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "Invalid post form")
		return
	}

	post, err := h.posts.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.flash(c, "Post successfully updated!")
	h.ok(c, post)
}

// DeleteConfirm handles GET /delete_post/:id.
func (h *PostHandler) DeleteConfirm(c *gin.Context) {
	h.show(c, func(post *models.Post) gin.H {
		return gin.H{"confirm": "delete_post", "post": post}
	})
}

// DeletePost removes a post owned by the caller.
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.flash(c, "Post successfully deleted!")
	h.ok(c, gin.H{"deleted": id})
}

func (h *PostHandler) show(c *gin.Context, view func(*models.Post) gin.H) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, view(post))
}

func (h *PostHandler) notFound(c *gin.Context) {
	h.fail(c, &service.Error{Kind: service.ErrNotFound, Msg: "Post not found"})
}
