package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (*models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(*models.User)

	if !ok {
		return nil, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
