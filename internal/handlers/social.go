package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// LikePost records a like even when the user already liked the post.
func (h *Handler) LikePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := utils.GetIDParam(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.LikePost(ctx.Request.Context(), currentUser.ID, postID); err != nil {
		h.respondError(ctx, err, "Failed to like post")
		return
	}

	h.respondLikes(ctx, http.StatusCreated, postID)
}

func (h *Handler) UnlikePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := h.loadPost(ctx)
	if post == nil {
		return
	}

	removed, err := h.store.UnlikePost(ctx.Request.Context(), currentUser.ID, post.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to unlike post")
		return
	}

	if removed == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post is not liked"})
		return
	}

	h.respondLikes(ctx, http.StatusOK, post.ID)
}

func (h *Handler) respondLikes(ctx *gin.Context, status int, postID uint) {
	likes, err := h.store.CountLikes(ctx.Request.Context(), postID)

	if err != nil {
		h.respondError(ctx, err, "Failed to count likes")
		return
	}

	ctx.JSON(status, gin.H{"post_id": postID, "likes": likes})
}

func (h *Handler) ListComments(ctx *gin.Context) {
	post := h.loadPost(ctx)
	if post == nil {
		return
	}

	comments, err := h.store.ListComments(ctx.Request.Context(), post.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to list comments")
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, types.NewCommentResponse(&comments[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"comments": response})
}

func (h *Handler) CreateComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := utils.GetIDParam(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateCommentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := h.store.CreateComment(ctx.Request.Context(), currentUser.ID, postID, req.Text)

	if err != nil {
		h.respondError(ctx, err, "Failed to create comment")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"comment": types.NewCommentResponse(comment)})
}

func (h *Handler) DeleteComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetIDParam(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.store.GetComment(ctx.Request.Context(), commentID)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch comment")
		return
	}

	if !canModify(currentUser, comment.AuthorID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete this comment"})
		return
	}

	if err := h.store.DeleteComment(ctx.Request.Context(), comment.ID); err != nil {
		h.respondError(ctx, err, "Failed to delete comment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
