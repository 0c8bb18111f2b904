package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"mealsub/internal/shared/errors"
	"mealsub/internal/shared/id"
)

// ParseSIDParam parses and validates a Stripe-style prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "sid").
// prefix is the expected SID prefix (e.g., id.PrefixSubscription).
// entityName is used in error messages (e.g., "subscription").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseIntParam parses a signed integer path parameter. Range checks are left
// to the caller so domain rules decide what a negative value means.
func ParseIntParam(c *gin.Context, paramName, invalidMessage string) (int, error) {
	raw := c.Param(paramName)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(invalidMessage)
	}
	return n, nil
}
