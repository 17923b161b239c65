package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lazos-social/lazos/models"
	"github.com/lazos-social/lazos/utils"
)

// maxPostBodyRunes caps post length, counted in runes like the profile fields.
const maxPostBodyRunes = 5000

// PostService is the post store plus the feed assembler (feed.go).
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost publishes a post for the given owner. The body is stripped to
// plain text; a blank or oversized body is rejected before any write.
func (s *PostService) CreatePost(ownerID uint, body, imageURL string) (*models.Post, error) {
	body = strings.TrimSpace(utils.SanitizeStrict(body))
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len([]rune(body)) > maxPostBodyRunes {
		return nil, ErrBodyTooLong
	}

	var owner models.User
	if err := s.db.First(&owner, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	post := models.Post{
		UserID:   ownerID,
		Body:     body,
		ImageURL: imageURL,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	post.User = owner
	return &post, nil
}

// GetPost loads one post with its author, comments, and counts.
func (s *PostService) GetPost(postID uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("User").Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC").Order("id ASC").Preload("User")
	}).First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	posts := []models.Post{post}
	if err := s.attachCounts(posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// PostOwner returns the owning account id of a post without loading the rest.
func (s *PostService) PostOwner(postID uint) (uint, error) {
	var post models.Post
	if err := s.db.Select("id", "user_id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return post.UserID, nil
}

// ListByOwner returns the owner's posts newest first, with ties broken by id
// descending so the ordering is deterministic.
func (s *PostService) ListByOwner(ownerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Where("user_id = ?", ownerID).
		Preload("User").
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := s.attachCounts(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost removes a post plus its comments and likes. Only the owner may
// delete it.
func (s *PostService) DeletePost(ownerID, postID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.UserID != ownerID {
		return ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

// attachCounts fills LikeCount and CommentCount with two grouped queries
// instead of one pair of counts per post.
func (s *PostService) attachCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	type rowCount struct {
		PostID uint
		N      int64
	}

	var likeRows []rowCount
	err := s.db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&likeRows).Error
	if err != nil {
		return err
	}
	var commentRows []rowCount
	err = s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error
	if err != nil {
		return err
	}

	likes := make(map[uint]int64, len(likeRows))
	for _, r := range likeRows {
		likes[r.PostID] = r.N
	}
	comments := make(map[uint]int64, len(commentRows))
	for _, r := range commentRows {
		comments[r.PostID] = r.N
	}
	for i := range posts {
		posts[i].LikeCount = likes[posts[i].ID]
		posts[i].CommentCount = comments[posts[i].ID]
	}
	return nil
}
