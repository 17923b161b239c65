package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lazos-social/lazos/services"
	"github.com/lazos-social/lazos/utils"
)

// PostController handles posts, the feed, likes, and comments.
type PostController struct {
	posts        *services.PostService
	interactions *services.InteractionService
}

// NewPostController creates a PostController.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{
		posts:        services.NewPostService(db),
		interactions: services.NewInteractionService(db),
	}
}

// invalidateUserPosts drops the cached public post listing for an owner.
func invalidateUserPosts(ownerID uint) {
	utils.InvalidateByPrefix("cache:user:" + strconv.Itoa(int(ownerID)) + ":posts")
}

// CreatePost publishes a post for the authenticated user. The image, if any,
// was uploaded beforehand and is referenced by URL.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Body     string `json:"body" binding:"required"`
		ImageURL string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	post, err := p.posts.CreatePost(userID, req.Body, req.ImageURL)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateUserPosts(userID)
	utils.Success(ctx, gin.H{"post": post})
}

// Feed returns the viewer's feed: own posts plus posts from followed
// accounts, newest first, capped.
func (p *PostController) Feed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	posts, err := p.posts.BuildFeed(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to build feed")
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// GetPost returns a single post with author, comments, and counts.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	post, err := p.posts.GetPost(postID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes the authenticated user's own post with its comments and likes.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := p.posts.DeletePost(userID, postID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateUserPosts(userID)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// ToggleLike likes the post when no like exists, unlikes otherwise, and
// reports the action plus the post's resulting like count.
func (p *PostController) ToggleLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	action, count, err := p.interactions.ToggleLike(userID, postID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if ownerID, err := p.posts.PostOwner(postID); err == nil {
		invalidateUserPosts(ownerID)
	}

	utils.Success(ctx, gin.H{
		"action":     action,
		"like_count": count,
	})
}

// CreateComment attaches a comment to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	comment, err := p.interactions.AddComment(userID, postID, req.Body)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if ownerID, err := p.posts.PostOwner(postID); err == nil {
		invalidateUserPosts(ownerID)
	}

	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes the authenticated user's own comment.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	commentID, ok := paramID(ctx, "commentId")
	if !ok {
		return
	}

	if err := p.interactions.DeleteComment(userID, commentID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// paramID parses a positive integer path parameter, replying 400 on failure.
func paramID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
