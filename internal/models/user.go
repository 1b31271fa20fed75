package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Posts     []Post   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Following []Follow `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followers []Follow `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSummary is the public shape used in follower lists and search results.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

type RegisterRequest struct {
	Email           string `form:"email" json:"email"`
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"password1" json:"password1"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type SearchRequest struct {
	Username string `form:"username" json:"username"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
