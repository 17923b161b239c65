package models

import "time"

// Like marks a post as liked by a user. The composite unique index is the
// concurrency boundary: at most one row may exist per (user, post) pair even
// under concurrent toggle attempts.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
