package models

import (
	"time"
)

// Comment represents a comment on a post. Ownership follows the same dual
// mode as Post. Comments soft-delete: the row persists with IsDeleted set so
// the thread keeps an audit trail, but it is excluded from listings and from
// the parent's comment count.
//
// IsDeleted/DeletedAt are explicit rather than gorm.DeletedAt so that deleted
// rows remain reachable through ordinary queries when needed.
type Comment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PostID    uint   `gorm:"not null;index" json:"post_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	AuthorID  *uint  `gorm:"index" json:"author_id"`
	Author    *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Nickname  string `gorm:"not null" json:"nickname"`
	Password  string `json:"-"`
	IsDeleted bool   `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
