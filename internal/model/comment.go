package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to exactly one post and one author.
// It is removed when either parent is deleted.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
	Post   Post `json:"-" gorm:"foreignKey:PostID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
