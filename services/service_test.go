package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lazos-social/lazos/models"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// TranslateError matches the production setup so duplicate-key handling
// behaves the same way.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Upload{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

// mustRegister creates an account through the credential store.
func mustRegister(t *testing.T, svc *AccountService, username string) *models.User {
	t.Helper()
	user, err := svc.Register(username, username+"@example.com", username, "secret123")
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return user
}

// insertPostAt writes a post row with an explicit creation time, bypassing
// the service, so ordering tie-breaks can be exercised deterministically.
func insertPostAt(t *testing.T, db *gorm.DB, ownerID uint, body string, at time.Time) *models.Post {
	t.Helper()
	post := models.Post{UserID: ownerID, Body: body, CreatedAt: at, UpdatedAt: at}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to insert post: %v", err)
	}
	return &post
}
