package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lazos-social/lazos/config"
	"github.com/lazos-social/lazos/models"
	"github.com/lazos-social/lazos/utils"
)

// allowedImageExts is the extension allow-list for uploaded images.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadController stores uploaded images on disk and records them so posts
// and avatars can reference them by URL.
type UploadController struct {
	db *gorm.DB
}

// NewUploadController creates an UploadController.
func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{db: db}
}

// UploadImage accepts one image file, enforces the extension allow-list and
// the configured size ceiling, and returns the public URL of the stored file.
func (u *UploadController) UploadImage(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "no file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		utils.Error(ctx, http.StatusBadRequest, 40041, "file type not allowed")
		return
	}

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxMB) << 20
	if header.Size > 0 && header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40042, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxMB))
		return
	}

	now := time.Now()
	baseDir := filepath.Join(cfg.UploadDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create upload directory")
		return
	}

	safeName := uuid.NewString() + ext
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to save file")
		return
	}
	defer out.Close()

	// Enforce the ceiling while copying; multipart headers can lie about size.
	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to write file")
		return
	}
	if written > maxSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40042, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxMB))
		return
	}

	relURL := "/" + filepath.ToSlash(dstPath)
	absPath, _ := filepath.Abs(dstPath)
	if err := u.db.Create(&models.Upload{UserID: userID, FilePath: absPath, URL: relURL}).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to record upload %s: %v", relURL, err)
		}
	}

	utils.Success(ctx, gin.H{"url": relURL})
}
