package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog post. Identity is dual: the surrogate key (ID) and
// the human-readable slug, both unique. The slug is assigned once at creation
// and never regenerated, so published URLs stay stable across title edits.
type Post struct {
	ID            uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string     `json:"title" gorm:"size:255;not null"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	Excerpt       string     `json:"excerpt,omitempty" gorm:"size:512"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	AuthorID      uuid.UUID  `json:"author_id" gorm:"type:char(36);not null;index"`
	Category      string     `json:"category,omitempty" gorm:"size:100;index"`
	Tags          StringList `json:"tags" gorm:"type:json"`
	FeaturedImage string     `json:"featured_image,omitempty" gorm:"size:512"`
	Published     bool       `json:"published" gorm:"not null;default:false;index"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Views         int64      `json:"views" gorm:"not null;default:0"`
	Likes         StringList `json:"likes" gorm:"type:json"` // set of user IDs
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations. Author keeps its JSON tag so the cached feed snapshot
	// round-trips with the joined author; responses narrow it to a summary.
	Author   User      `json:"author" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SetPublished flips the publication state while keeping the invariant
// Published == (PublishedAt != nil). The original publication timestamp is
// preserved when a post is re-published after being already published.
func (p *Post) SetPublished(published bool, now time.Time) {
	p.Published = published
	if published {
		if p.PublishedAt == nil {
			p.PublishedAt = &now
		}
		return
	}
	p.PublishedAt = nil
}

// LikedBy reports whether the given user has liked the post.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	id := userID.String()
	for _, l := range p.Likes {
		if l == id {
			return true
		}
	}
	return false
}

// ToggleLike adds or removes the user from the like set and reports the new state.
func (p *Post) ToggleLike(userID uuid.UUID) bool {
	id := userID.String()
	for i, l := range p.Likes {
		if l == id {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, id)
	return true
}
