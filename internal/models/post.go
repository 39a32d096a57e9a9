package models

import (
	"time"
)

// Post represents a board post. A post is either member-owned (AuthorID set,
// Password empty) or anonymous-owned (AuthorID nil, Password holding a bcrypt
// digest of the caller-chosen credential). Posts are hard-deleted; there is no
// audit trail for them, unlike comments.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID *uint  `gorm:"index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Nickname string `gorm:"not null" json:"nickname"`
	// Password is the bcrypt digest guarding anonymous edit/delete. Never
	// serialized; empty for member-owned posts.
	Password     string    `json:"-"`
	View         int       `gorm:"not null;default:0" json:"view"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	HasImage     bool      `gorm:"not null;default:false" json:"has_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Comments     []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}
