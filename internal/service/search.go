package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Users returns users whose username contains query, case-sensitively, in id
// order. sqlite's LIKE folds ASCII case, so the match uses instr/strpos.
func (s *SearchService) Users(ctx context.Context, query string) ([]models.User, error) {
	cond := "instr(username, ?) > 0"
	if s.db.Dialector.Name() == "postgres" {
		cond = "strpos(username, ?) > 0"
	}

	users := []models.User{}
	err := s.db.WithContext(ctx).
		Where(cond, query).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, storeError("search users", err)
	}
	return users, nil
}
