package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lazos-social/lazos/models"
)

// Follow toggle results.
const (
	ActionFollowed   = "followed"
	ActionUnfollowed = "unfollowed"
)

// FollowService maintains the directed follow graph. The store operations are
// idempotent; the self-follow policy lives in ToggleFollow, the interaction
// boundary.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow inserts the edge follower -> followed. A duplicate edge is a no-op;
// the composite unique index settles concurrent inserts.
func (s *FollowService) Follow(followerID, followedID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	if err := s.db.Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// Unfollow removes the edge follower -> followed; absent edges are a no-op.
func (s *FollowService) Unfollow(followerID, followedID uint) error {
	return s.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether the edge follower -> followed exists.
func (s *FollowService) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowerCount returns how many accounts follow the given account.
func (s *FollowService) FollowerCount(accountID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).Where("followed_id = ?", accountID).Count(&count).Error
	return count, err
}

// FollowingCount returns how many accounts the given account follows.
func (s *FollowService) FollowingCount(accountID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).Where("follower_id = ?", accountID).Count(&count).Error
	return count, err
}

// ToggleFollow inverts the follow relation in one call and returns the action
// taken plus the target's resulting follower count. Following yourself is
// rejected here rather than at the storage layer.
func (s *FollowService) ToggleFollow(followerID, followedID uint) (string, int64, error) {
	if followerID == followedID {
		return "", 0, ErrSelfFollow
	}
	var target models.User
	if err := s.db.First(&target, followedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, ErrNotFound
		}
		return "", 0, err
	}

	following, err := s.IsFollowing(followerID, followedID)
	if err != nil {
		return "", 0, err
	}

	action := ActionFollowed
	if following {
		action = ActionUnfollowed
		err = s.Unfollow(followerID, followedID)
	} else {
		err = s.Follow(followerID, followedID)
	}
	if err != nil {
		return "", 0, err
	}

	count, err := s.FollowerCount(followedID)
	if err != nil {
		return "", 0, err
	}
	return action, count, nil
}
