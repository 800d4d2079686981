package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/auth"
	"github.com/photoshare-dev/photoshare/internal/config"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/storage"
	"github.com/photoshare-dev/photoshare/internal/store"
	"github.com/photoshare-dev/photoshare/internal/types"
)

type Handler struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *store.Store
	tokens   *auth.TokenManager
	uploader *storage.Uploader
	now      func() time.Time
}

func NewHandler(cfg config.Config, logger *slog.Logger, st *store.Store, tokens *auth.TokenManager, uploader *storage.Uploader) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		tokens:   tokens,
		uploader: uploader,
		now:      time.Now,
	}
}

// respondError maps store errors onto status codes. Anything unrecognised is
// logged under msg and reported as a 500.
func (h *Handler) respondError(ctx *gin.Context, err error, msg string) {
	var validationErr *store.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrInvalidReference):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Referenced record not found"})
	case errors.Is(err, store.ErrDuplicate):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email or username already taken"})
	case errors.Is(err, store.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		h.logger.Error(msg, "error", err, "path", ctx.FullPath())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	secure := h.cfg.IsProduction()

	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cfg.Domain,
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// removeMedia deletes files whose rows are already gone.
func (h *Handler) removeMedia(ctx *gin.Context, locations ...string) {
	for _, location := range locations {
		if location != "" {
			h.uploader.Remove(ctx.Request.Context(), location)
		}
	}
}

// canModify reports whether user may change or delete a record owned by
// authorID.
func canModify(user *models.User, authorID uint) bool {
	return user.ID == authorID || user.IsStaff()
}

func (h *Handler) maxUploadBytes() int64 {
	return h.cfg.MaxUploadMB << 20
}
