package services

import (
	"gorm.io/gorm"

	"github.com/lazos-social/lazos/models"
)

// feedLimit caps how many posts a feed returns. There is no pagination; the
// full re-scan per call is a known limitation at larger scale.
const feedLimit = 50

// BuildFeed assembles the viewer's feed: posts owned by the viewer or by
// anyone the viewer follows, newest first with id as the deterministic
// tiebreaker, capped at feedLimit. Read-only.
func (s *PostService) BuildFeed(viewerID uint) ([]models.Post, error) {
	followed := s.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", viewerID)

	var posts []models.Post
	err := s.db.Where("user_id = ? OR user_id IN (?)", viewerID, followed).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Preload("User")
		}).
		Order("created_at DESC").Order("id DESC").
		Limit(feedLimit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := s.attachCounts(posts); err != nil {
		return nil, err
	}
	return posts, nil
}
