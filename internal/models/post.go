package models

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     string    `gorm:"type:text;not null" json:"image"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostRequest carries the create/edit form fields.
type PostRequest struct {
	Title string `form:"title" json:"title"`
	Text  string `form:"text" json:"text"`
	Image string `form:"image" json:"image"`
}
