package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lazos-social/lazos/models"
	"github.com/lazos-social/lazos/utils"
)

// Like toggle results.
const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

// maxCommentBodyRunes caps comment length.
const maxCommentBodyRunes = 1000

// InteractionService handles likes and comments on posts.
type InteractionService struct {
	db *gorm.DB
}

// NewInteractionService creates an InteractionService.
func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

// ToggleLike inverts the like relation for (account, post) and returns the
// action taken plus the post's resulting like count. The delete-then-insert
// sequence together with the composite unique index keeps the toggle safe
// under concurrent calls: a concurrent duplicate insert collapses to "liked".
func (s *InteractionService) ToggleLike(accountID, postID uint) (string, int64, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, ErrNotFound
		}
		return "", 0, err
	}

	action := ActionLiked
	res := s.db.Where("user_id = ? AND post_id = ?", accountID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return "", 0, res.Error
	}
	if res.RowsAffected > 0 {
		action = ActionUnliked
	} else {
		like := models.Like{UserID: accountID, PostID: postID}
		if err := s.db.Create(&like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", 0, err
		}
	}

	count, err := s.LikeCount(postID)
	if err != nil {
		return "", 0, err
	}
	return action, count, nil
}

// LikeCount returns how many accounts like the post.
func (s *InteractionService) LikeCount(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CommentCount returns how many comments the post has.
func (s *InteractionService) CommentCount(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// AddComment attaches a comment to an existing post. Bodies are plain text
// with the same blank/length policy as posts, at a lower cap.
func (s *InteractionService) AddComment(accountID, postID uint, body string) (*models.Comment, error) {
	body = strings.TrimSpace(utils.SanitizeStrict(body))
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len([]rune(body)) > maxCommentBodyRunes {
		return nil, ErrBodyTooLong
	}

	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		PostID: postID,
		UserID: accountID,
		Body:   body,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment; only its author may do so.
func (s *InteractionService) DeleteComment(accountID, commentID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != accountID {
		return ErrForbidden
	}
	return s.db.Delete(&comment).Error
}
