package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses a numeric path parameter such as :post_id.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, fmt.Errorf("%s not found", name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, fmt.Errorf("Invalid %s", name)
	}

	return uint(id), nil
}

// GetIntQuery returns the integer query parameter, or fallback when it is
// absent or malformed.
func GetIntQuery(ctx *gin.Context, name string, fallback int) int {
	raw, ok := ctx.GetQuery(name)

	if !ok {
		return fallback
	}

	value, err := strconv.Atoi(raw)

	if err != nil || value < 0 {
		return fallback
	}

	return value
}
