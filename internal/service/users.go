package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/bloglite/backend/internal/models"
)

const msgNoSuchUser = "No such user exists"

func findUserByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(msgNoSuchUser)
		}
		return nil, storeError("find user by username", err)
	}
	return &user, nil
}

func findUserByID(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(msgNoSuchUser)
		}
		return nil, storeError("find user by id", err)
	}
	return &user, nil
}
