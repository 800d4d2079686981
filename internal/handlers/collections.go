package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type CollectionRequest struct {
	Title string `json:"title" binding:"required"`
}

type MembershipRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

// loadOwnedCollection resolves :collection_id for its author (or staff). On
// failure it writes the response and returns nil.
func (h *Handler) loadOwnedCollection(ctx *gin.Context, user *models.User) *models.Collection {
	collectionID, err := utils.GetIDParam(ctx, "collection_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil
	}

	collection, err := h.store.GetCollection(ctx.Request.Context(), collectionID)

	if err != nil {
		h.respondError(ctx, err, "Failed to fetch collection")
		return nil
	}

	if !canModify(user, collection.AuthorID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Collection belongs to another user"})
		return nil
	}

	return collection
}

func (h *Handler) CreateCollection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CollectionRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	collection, err := h.store.CreateCollection(ctx.Request.Context(), currentUser.ID, req.Title)

	if err != nil {
		h.respondError(ctx, err, "Failed to create collection")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"collection": types.NewCollectionResponse(collection)})
}

func (h *Handler) ListCollections(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	collections, err := h.store.ListCollections(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		h.respondError(ctx, err, "Failed to list collections")
		return
	}

	response := make([]types.CollectionResponse, 0, len(collections))
	for i := range collections {
		response = append(response, types.NewCollectionResponse(&collections[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"collections": response})
}

func (h *Handler) GetCollection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	collection := h.loadOwnedCollection(ctx, currentUser)
	if collection == nil {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"collection": types.NewCollectionResponse(collection)})
}

func (h *Handler) RenameCollection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	collection := h.loadOwnedCollection(ctx, currentUser)
	if collection == nil {
		return
	}

	var req CollectionRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := h.store.RenameCollection(ctx.Request.Context(), collection.ID, req.Title)

	if err != nil {
		h.respondError(ctx, err, "Failed to rename collection")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"collection": types.NewCollectionResponse(updated)})
}

func (h *Handler) DeleteCollection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	collection := h.loadOwnedCollection(ctx, currentUser)
	if collection == nil {
		return
	}

	if err := h.store.DeleteCollection(ctx.Request.Context(), collection.ID); err != nil {
		h.respondError(ctx, err, "Failed to delete collection")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}

func (h *Handler) AddPostToCollection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	collection := h.loadOwnedCollection(ctx, currentUser)
	if collection == nil {
		return
	}

	var req MembershipRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.store.AddPostToCollection(ctx.Request.Context(), collection.ID, req.PostID); err != nil {
		h.respondError(ctx, err, "Failed to add post to collection")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post added to collection"})
}

func (h *Handler) RemovePostFromCollection(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	collection := h.loadOwnedCollection(ctx, currentUser)
	if collection == nil {
		return
	}

	postID, err := utils.GetIDParam(ctx, "post_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.RemovePostFromCollection(ctx.Request.Context(), collection.ID, postID); err != nil {
		h.respondError(ctx, err, "Failed to remove post from collection")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Post removed from collection"})
}
