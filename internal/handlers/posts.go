package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/storage"
	"github.com/photoshare-dev/photoshare/internal/store"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// loadPost resolves :post_id. On failure it writes the response and returns
// nil.
func (h *Handler) loadPost(ctx *gin.Context) *models.Post {
	postID, err := utils.GetIDParam(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil
	}

	post, err := h.store.GetPost(ctx.Request.Context(), postID)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch post")
		return nil
	}

	return post
}

// CreatePost takes multipart fields title, description and image.
func (h *Handler) CreatePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	title := ctx.PostForm("title")

	if strings.TrimSpace(title) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "title is required", "field": "title"})
		return
	}

	var description *string
	if value := ctx.PostForm("description"); value != "" {
		description = &value
	}

	image, ok := h.saveUpload(ctx, "image", storage.PostPrefix, storage.PostWidth, storage.PostHeight)
	if !ok {
		return
	}

	post, err := h.store.CreatePost(ctx.Request.Context(), store.NewPost{
		AuthorID:    currentUser.ID,
		Title:       title,
		Description: description,
		Image:       image,
	})

	if err != nil {
		h.removeMedia(ctx, image)
		h.respondError(ctx, err, "Failed to create post")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post": types.NewPostResponse(post)})
}

// ListPosts accepts author_id, limit and offset query parameters.
func (h *Handler) ListPosts(ctx *gin.Context) {
	filter := store.PostFilter{
		AuthorID: uint(utils.GetIntQuery(ctx, "author_id", 0)),
		Limit:    utils.GetIntQuery(ctx, "limit", store.DefaultPageSize),
		Offset:   utils.GetIntQuery(ctx, "offset", 0),
	}

	posts, err := h.store.ListPosts(ctx.Request.Context(), filter)

	if err != nil {
		h.respondError(ctx, err, "Failed to list posts")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": types.NewPostResponses(posts)})
}

func (h *Handler) GetPost(ctx *gin.Context) {
	post := h.loadPost(ctx)
	if post == nil {
		return
	}

	likes, err := h.store.CountLikes(ctx.Request.Context(), post.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to count likes")
		return
	}

	response := types.NewPostResponse(post)
	response.Likes = &likes

	ctx.JSON(http.StatusOK, gin.H{"post": response})
}

func (h *Handler) UpdatePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := h.loadPost(ctx)
	if post == nil {
		return
	}

	if post.AuthorID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit this post"})
		return
	}

	var req UpdatePostRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title == nil && req.Description == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	updated, err := h.store.UpdatePost(ctx.Request.Context(), post.ID, store.PostUpdate{
		Title:       req.Title,
		Description: req.Description,
	})

	if err != nil {
		h.respondError(ctx, err, "Failed to update post")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"post": types.NewPostResponse(updated)})
}

func (h *Handler) DeletePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := h.loadPost(ctx)
	if post == nil {
		return
	}

	if !canModify(currentUser, post.AuthorID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete this post"})
		return
	}

	if err := h.store.DeletePost(ctx.Request.Context(), post.ID); err != nil {
		h.respondError(ctx, err, "Failed to delete post")
		return
	}

	h.removeMedia(ctx, post.Image)

	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
