package services

import (
	"errors"
	"strings"

	"github.com/badoux/checkmail"
	"gorm.io/gorm"

	"github.com/lazos-social/lazos/models"
	"github.com/lazos-social/lazos/utils"
)

const searchLimit = 20

// AccountService is the credential store: registration, authentication, and
// profile lifecycle including the cascading account delete.
type AccountService struct {
	db *gorm.DB
}

// NewAccountService creates an AccountService.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Register creates an account with a bcrypt password hash, empty bio, and the
// default avatar. Username and email uniqueness is pre-checked and then
// enforced again by the database unique indexes, so a concurrent duplicate
// insert still fails cleanly.
func (s *AccountService) Register(username, email, displayName, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)

	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, ErrInvalidEmail
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race; report which field collided.
			var n int64
			if s.db.Model(&models.User{}).Where("username = ?", username).Count(&n); n > 0 {
				return nil, ErrDuplicateUsername
			}
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the account when the stored hash verifies against the
// supplied password. Unknown username and wrong password are indistinguishable.
func (s *AccountService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ProfileUpdate carries optional profile fields; nil pointers leave the
// stored value unchanged.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// UpdateProfile applies a partial profile update. The bio keeps a safe markup
// subset; other fields are stored verbatim.
func (s *AccountService) UpdateProfile(accountID uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if upd.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.Bio != nil {
		user.Bio = utils.Sanitize(strings.TrimSpace(*upd.Bio))
	}
	if upd.AvatarURL != nil && *upd.AvatarURL != "" {
		user.AvatarURL = *upd.AvatarURL
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and everything it owns in one
// transaction: its likes and comments, its posts with their likes and
// comments, and every follow edge in either direction. No orphan rows remain.
func (s *AccountService) DeleteAccount(accountID uint) error {
	if _, err := s.GetByID(accountID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", accountID)
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", accountID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", accountID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", accountID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", accountID, accountID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, accountID).Error
	})
}

// GetByID looks up an account by primary key.
func (s *AccountService) GetByID(accountID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername looks up an account by its unique username.
func (s *AccountService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search returns accounts whose username or display name contains the query,
// capped at 20 results. An empty query lists the newest accounts.
func (s *AccountService) Search(query string) ([]models.User, error) {
	var users []models.User
	q := s.db.Model(&models.User{}).Order("created_at DESC").Limit(searchLimit)
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + query + "%"
		q = q.Where("username LIKE ? OR display_name LIKE ?", pattern, pattern)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
