package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/store"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type AdminUpdateUserRequest struct {
	IsActive *bool `json:"is_active"`
	IsAdmin  *bool `json:"is_admin"`
}

func (h *Handler) GetUserProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUser(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch user")
		return
	}

	posts, err := h.store.ListPosts(ctx.Request.Context(), store.PostFilter{AuthorID: user.ID})

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch user posts")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  types.NewUserResponse(user, canModify(currentUser, user.ID)),
		"posts": types.NewPostResponses(posts),
	})
}

func (h *Handler) AdminUpdateUser(ctx *gin.Context) {
	userID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req AdminUpdateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.IsActive == nil && req.IsAdmin == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	flags := store.UserFlags{IsActive: req.IsActive, IsAdmin: req.IsAdmin}

	if err := h.store.SetFlags(ctx.Request.Context(), userID, flags); err != nil {
		h.respondError(ctx, err, "Failed to update user")
		return
	}

	user, err := h.store.GetUser(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(user, true)})
}

func (h *Handler) AdminDeleteUser(ctx *gin.Context) {
	userID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media, err := h.store.DeleteUser(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err, "Failed to delete user")
		return
	}

	h.removeMedia(ctx, media...)

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
