package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/store"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type CreateGalleryRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   *string   `json:"description"`
	TimeOpen      time.Time `json:"time_open" binding:"required"`
	TimeClose     time.Time `json:"time_close" binding:"required"`
	LimitVisitors *int      `json:"limit_visitors"`
}

func (h *Handler) loadGallery(ctx *gin.Context) *models.Gallery {
	galleryID, err := utils.GetIDParam(ctx, "gallery_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil
	}

	gallery, err := h.store.GetGallery(ctx.Request.Context(), galleryID)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch gallery")
		return nil
	}

	return gallery
}

// loadOwnedGallery is loadGallery restricted to the author and staff.
func (h *Handler) loadOwnedGallery(ctx *gin.Context, user *models.User) *models.Gallery {
	gallery := h.loadGallery(ctx)
	if gallery == nil {
		return nil
	}

	if !canModify(user, gallery.AuthorID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Gallery belongs to another user"})
		return nil
	}

	return gallery
}

func (h *Handler) CreateGallery(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateGalleryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	gallery, err := h.store.CreateGallery(ctx.Request.Context(), store.NewGallery{
		AuthorID:      currentUser.ID,
		Title:         req.Title,
		Description:   req.Description,
		TimeOpen:      req.TimeOpen,
		TimeClose:     req.TimeClose,
		LimitVisitors: req.LimitVisitors,
	})

	if err != nil {
		h.respondError(ctx, err, "Failed to create gallery")
		return
	}

	gallery.Author = *currentUser

	ctx.JSON(http.StatusCreated, gin.H{"gallery": types.NewGalleryResponse(gallery)})
}

// ListGalleries accepts an optional author_id query parameter.
func (h *Handler) ListGalleries(ctx *gin.Context) {
	authorID := uint(utils.GetIntQuery(ctx, "author_id", 0))

	galleries, err := h.store.ListGalleries(ctx.Request.Context(), authorID)

	if err != nil {
		h.respondError(ctx, err, "Failed to list galleries")
		return
	}

	response := make([]types.GalleryResponse, 0, len(galleries))
	for i := range galleries {
		response = append(response, types.NewGalleryResponse(&galleries[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"galleries": response})
}

func (h *Handler) GetGallery(ctx *gin.Context) {
	gallery := h.loadGallery(ctx)
	if gallery == nil {
		return
	}

	visitors, err := h.store.CountVisitors(ctx.Request.Context(), gallery.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to count visitors")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"gallery":  types.NewGalleryResponse(gallery),
		"visitors": visitors,
		"is_open":  gallery.IsOpenAt(h.now()),
	})
}

func (h *Handler) DeleteGallery(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	gallery := h.loadOwnedGallery(ctx, currentUser)
	if gallery == nil {
		return
	}

	if err := h.store.DeleteGallery(ctx.Request.Context(), gallery.ID); err != nil {
		h.respondError(ctx, err, "Failed to delete gallery")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Gallery deleted successfully"})
}

func (h *Handler) AddPostToGallery(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	gallery := h.loadOwnedGallery(ctx, currentUser)
	if gallery == nil {
		return
	}

	var req MembershipRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.store.AddPostToGallery(ctx.Request.Context(), gallery.ID, req.PostID); err != nil {
		h.respondError(ctx, err, "Failed to add post to gallery")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post added to gallery"})
}

func (h *Handler) RemovePostFromGallery(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	gallery := h.loadOwnedGallery(ctx, currentUser)
	if gallery == nil {
		return
	}

	postID, err := utils.GetIDParam(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.RemovePostFromGallery(ctx.Request.Context(), gallery.ID, postID); err != nil {
		h.respondError(ctx, err, "Failed to remove post from gallery")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post removed from gallery"})
}

// VisitGallery admits the current user while the gallery is open. Once
// limit_visitors distinct users have visited, only returning visitors get in.
func (h *Handler) VisitGallery(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	gallery := h.loadGallery(ctx)
	if gallery == nil {
		return
	}

	if !gallery.IsOpenAt(h.now()) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Gallery is not open"})
		return
	}

	visited, err := h.store.HasVisited(ctx.Request.Context(), currentUser.ID, gallery.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to check visit")
		return
	}

	if !visited {
		visitors, err := h.store.CountVisitors(ctx.Request.Context(), gallery.ID)

		if err != nil {
			h.respondError(ctx, err, "Failed to count visitors")
			return
		}

		if !gallery.Admits(visitors) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Gallery has reached its visitor limit"})
			return
		}
	}

	visit, err := h.store.RecordVisit(ctx.Request.Context(), currentUser.ID, gallery.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to record visit")
		return
	}

	visit.User = *currentUser

	ctx.JSON(http.StatusCreated, gin.H{
		"visit":   types.NewVisitResponse(visit),
		"gallery": types.NewGalleryResponse(gallery),
	})
}

func (h *Handler) ListVisits(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	gallery := h.loadOwnedGallery(ctx, currentUser)
	if gallery == nil {
		return
	}

	visits, err := h.store.ListVisits(ctx.Request.Context(), gallery.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to list visits")
		return
	}

	response := make([]types.VisitResponse, 0, len(visits))
	for i := range visits {
		response = append(response, types.NewVisitResponse(&visits[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"visits": response})
}
