package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lazos-social/lazos/services"
	"github.com/lazos-social/lazos/utils"
)

// UserController exposes public profiles, user search, and follow toggling.
type UserController struct {
	accounts *services.AccountService
	follows  *services.FollowService
	posts    *services.PostService
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		accounts: services.NewAccountService(db),
		follows:  services.NewFollowService(db),
		posts:    services.NewPostService(db),
	}
}

// GetProfile returns a public profile: the account, its posts newest first,
// follower/following counts, and whether the viewer already follows it.
// Not cached; is_following depends on the viewer.
func (u *UserController) GetProfile(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, "missing username")
		return
	}

	user, err := u.accounts.GetByUsername(username)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	isFollowing := false
	if viewerID, ok := getUserID(ctx); ok && viewerID != user.ID {
		isFollowing, err = u.follows.IsFollowing(viewerID, user.ID)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load profile")
			return
		}
	}

	posts, err := u.posts.ListByOwner(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load posts")
		return
	}
	followers, err := u.follows.FollowerCount(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load profile")
		return
	}
	following, err := u.follows.FollowingCount(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to load profile")
		return
	}

	utils.Success(ctx, gin.H{
		"user":            publicUser(*user),
		"posts":           posts,
		"follower_count":  followers,
		"following_count": following,
		"is_following":    isFollowing,
	})
}

// ListUserPosts returns a user's posts (public, viewer-independent, cached).
func (u *UserController) ListUserPosts(ctx *gin.Context) {
	idStr := strings.TrimSpace(ctx.Param("id"))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid user id")
		return
	}

	cacheKey := "cache:user:" + idStr + ":posts"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	if _, err := u.accounts.GetByID(uint(id)); err != nil {
		respondServiceError(ctx, err)
		return
	}
	posts, err := u.posts.ListByOwner(uint(id))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to list user posts")
		return
	}

	payload := gin.H{"items": posts}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// Search lists up to 20 accounts matching ?q= against username or display name.
func (u *UserController) Search(ctx *gin.Context) {
	users, err := u.accounts.Search(ctx.Query("q"))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to search users")
		return
	}
	items := make([]gin.H, 0, len(users))
	for _, usr := range users {
		items = append(items, publicUser(usr))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// ToggleFollow follows the target when no edge exists, unfollows otherwise,
// and reports the action plus the target's follower count.
func (u *UserController) ToggleFollow(ctx *gin.Context) {
	viewerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	username := strings.TrimSpace(ctx.Param("username"))
	target, err := u.accounts.GetByUsername(username)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	action, followers, err := u.follows.ToggleFollow(viewerID, target.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"action":         action,
		"follower_count": followers,
	})
}
