package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/storage"
	"github.com/photoshare-dev/photoshare/internal/store"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginUserRequest struct {
	// Login is a username or an email address.
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email           *string `json:"email"`
	Username        *string `json:"username"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) issueToken(ctx *gin.Context, user *models.User) (string, bool) {
	token, err := h.tokens.GenerateJWT(user.ID, user.Username)

	if err != nil {
		h.logger.Error("Failed to generate JWT", "user_id", user.ID, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", false
	}

	h.setTokenCookie(ctx, token, int(h.tokens.TTL().Seconds()))

	return token, true
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.store.CreateUser(ctx.Request.Context(), req.Email, req.Username, req.Password)

	if err != nil {
		h.respondError(ctx, err, "Failed to create user")
		return
	}

	token, ok := h.issueToken(ctx, user)
	if !ok {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user":  types.NewUserResponse(user, true),
		"token": token,
	})
}

func (h *Handler) LoginUser(ctx *gin.Context) {
	var req LoginUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.store.Authenticate(ctx.Request.Context(), req.Login, req.Password)

	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
			return
		}

		h.respondError(ctx, err, "Failed to authenticate")
		return
	}

	token, ok := h.issueToken(ctx, user)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  types.NewUserResponse(user, true),
		"token": token,
	})
}

func (h *Handler) LogoutUser(ctx *gin.Context) {
	h.setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(currentUser, true)})
}

func (h *Handler) UpdateMe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Email == nil && req.Username == nil && req.NewPassword == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if req.NewPassword != "" && req.CurrentPassword == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required to change password"})
		return
	}

	user, err := h.store.UpdateUser(ctx.Request.Context(), currentUser.ID, store.UserUpdate{
		Email:           req.Email,
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})

	if errors.Is(err, store.ErrInvalidCredentials) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	if err != nil {
		h.respondError(ctx, err, "Failed to update user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    types.NewUserResponse(user, true),
	})
}

func (h *Handler) DeleteMe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req DeleteUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password is required for account deletion"})
		return
	}

	if !currentUser.CheckPassword(req.Password) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect password"})
		return
	}

	media, err := h.store.DeleteUser(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to delete user")
		return
	}

	h.removeMedia(ctx, media...)
	h.setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func (h *Handler) UploadAvatar(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	location, ok := h.saveUpload(ctx, "avatar", storage.AvatarPrefix, storage.AvatarWidth, storage.AvatarHeight)
	if !ok {
		return
	}

	user, err := h.store.UpdateUser(ctx.Request.Context(), currentUser.ID, store.UserUpdate{Avatar: &location})

	if err != nil {
		h.removeMedia(ctx, location)
		h.respondError(ctx, err, "Failed to update avatar")
		return
	}

	if currentUser.Avatar != nil {
		h.removeMedia(ctx, *currentUser.Avatar)
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(user, true)})
}

func (h *Handler) DeleteAvatar(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cleared := ""

	user, err := h.store.UpdateUser(ctx.Request.Context(), currentUser.ID, store.UserUpdate{Avatar: &cleared})

	if err != nil {
		h.respondError(ctx, err, "Failed to clear avatar")
		return
	}

	if currentUser.Avatar != nil {
		h.removeMedia(ctx, *currentUser.Avatar)
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(user, true)})
}
