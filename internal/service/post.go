package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/emilythestrangee/bloglite/backend/internal/audit"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create publishes a post owned by the principal.
func (s *PostService) Create(ctx context.Context, req models.PostRequest) (*models.Post, error) {
	l := logger.Ctx(ctx)

	p, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Text == "":
		return nil, validationError("Your message can't be empty")
	case req.Title == "":
		return nil, validationError("Your Title can't be empty")
	case req.Image == "":
		return nil, validationError("Your Image URL can't be empty")
	}

	post := models.Post{
		Title:    req.Title,
		Text:     req.Text,
		Image:    req.Image,
		AuthorID: p.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		l.Error().Err(err).Uint(logger.FieldUserID, p.UserID).Msg("failed to create post")
		return nil, storeError("create post", err)
	}

	audit.LogWithDetail(ctx, audit.ActionPostCreate, p.UserID, postDetail(post.ID), "post created")
	return s.Get(ctx, post.ID)
}

// Get loads a post with its author.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Post not found")
		}
		return nil, storeError("get post", err)
	}
	return &post, nil
}

// Edit replaces title, text and image of a post owned by the principal.
func (s *PostService) Edit(ctx context.Context, id uint, req models.PostRequest) (*models.Post, error) {
	l := logger.Ctx(ctx)

	p, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, post); err != nil {
		return nil, err
	}

	switch {
	case req.Title == "":
		return nil, validationError("Title can't be empty")
	case req.Text == "":
		return nil, validationError("Content can't be empty")
	case req.Image == "":
		return nil, validationError("Image URL can't be empty")
	}

	err = s.db.WithContext(ctx).Model(post).Updates(map[string]interface{}{
		"title": req.Title,
		"text":  req.Text,
		"image": req.Image,
	}).Error
	if err != nil {
		l.Error().Err(err).Uint("post_id", id).Msg("failed to update post")
		return nil, storeError("update post", err)
	}

	audit.LogWithDetail(ctx, audit.ActionPostEdit, p.UserID, postDetail(id), "post updated")
	return s.Get(ctx, id)
}

// Delete removes a post owned by the principal.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	l := logger.Ctx(ctx)

	p, err := requirePrincipal(ctx)
	if err != nil {
		return err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(p, post); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Post{}, post.ID).Error; err != nil {
		l.Error().Err(err).Uint("post_id", id).Msg("failed to delete post")
		return storeError("delete post", err)
	}

	audit.LogWithDetail(ctx, audit.ActionPostDelete, p.UserID, postDetail(id), "post deleted")
	return nil
}

// ListByAuthor returns the posts written by username, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, username string) (*models.User, []models.Post, error) {
	user, err := findUserByUsername(ctx, s.db, username)
	if err != nil {
		return nil, nil, err
	}

	posts := []models.Post{}
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", user.ID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, nil, storeError("list posts by author", err)
	}
	return user, posts, nil
}

// authorize allows only the author to mutate a post.
func authorize(p Principal, post *models.Post) error {
	if post.AuthorID != p.UserID {
		return newError(ErrForbidden, "You can only change your own posts")
	}
	return nil
}

func postDetail(id uint) string {
	return "post:" + strconv.FormatUint(uint64(id), 10)
}
