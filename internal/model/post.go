package model

import (
	"time"

	"github.com/google/uuid"
)

// Post carries denormalized author/avatar snapshots. They are copies,
// not references: the profile update workflow re-propagates them when
// the owning profile changes, and they may be stale in between.
type Post struct {
	ID        int64     `json:"id"`
	UID       uuid.UUID `json:"uid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
