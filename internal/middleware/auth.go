package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/auth"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/photoshare-dev/photoshare/internal/utils"
)

type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware accepts "Authorization: Bearer <token>" or the token cookie
// and stores the active *models.User under types.ContextUserKey.
func AuthMiddleware(tokens *auth.TokenManager, users UserLookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := extractToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		claims, err := tokens.VerifyJWT(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), claims.UserID)

		if err != nil || !user.IsActive {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) (string, bool) {
	if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}

		return parts[1], true
	}

	if cookie, err := ctx.Cookie(types.TokenCookieName); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}

// RequireStaff must run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if !user.IsStaff() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}

		ctx.Next()
	}
}

func RequirePermission(perm string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		if !user.HasPerm(perm, nil) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}

		ctx.Next()
	}
}
