package models

import "time"

// Follow is a directed edge follower -> followed. The pair is the primary
// key, so an ordered pair appears at most once.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"followed_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"-"`
	Followed   User      `gorm:"foreignKey:FollowedID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowCounts backs the profile view.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
