package models

import (
	"time"
)

// Image records an uploaded file embedded in post content. The binary lives
// on disk under the configured upload directory; Hash deduplicates repeat
// uploads of the same bytes.
type Image struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Hash       string `gorm:"uniqueIndex;size:64;not null" json:"hash"`
	StoredPath string `gorm:"not null" json:"-"`
	ThumbPath  string `json:"-"`
	MimeType   string `gorm:"not null" json:"mime_type"`
	SizeBytes  int64  `gorm:"not null" json:"size_bytes"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	UploaderID *uint  `gorm:"index" json:"uploader_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
