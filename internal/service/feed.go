package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

// FeedService computes home feeds over the follow graph.
type FeedService struct {
	db        *gorm.DB
	graph     *FollowService
	fallbacks prometheus.Counter
}

// NewFeedService builds a feed service. fallbacks may be nil.
func NewFeedService(db *gorm.DB, graph *FollowService, fallbacks prometheus.Counter) *FeedService {
	return &FeedService{db: db, graph: graph, fallbacks: fallbacks}
}

// Timeline returns the posts of everyone the principal follows, including
// the principal through the self edge, newest first.
func (s *FeedService) Timeline(ctx context.Context) ([]models.Post, error) {
	p, err := requirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.graph.EnsureSelfFollow(ctx, p.UserID); err != nil {
		return nil, err
	}

	followed := s.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", p.UserID)

	posts := []models.Post{}
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN (?)", followed).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, storeError("load feed", err)
	}
	return posts, nil
}

// HomeFeed is Timeline with a best-effort read policy: a store failure
// yields an empty feed instead of an error.
func (s *FeedService) HomeFeed(ctx context.Context) ([]models.Post, error) {
	posts, err := s.Timeline(ctx)
	if err == nil {
		return posts, nil
	}
	if !errors.Is(err, ErrStore) {
		return nil, err
	}

	l := logger.Ctx(ctx)
	l.Warn().Err(err).Msg("home feed unavailable, serving empty feed")
	if s.fallbacks != nil {
		s.fallbacks.Inc()
	}
	return []models.Post{}, nil
}
