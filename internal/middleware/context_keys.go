package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/utils"
)

const (
	userIDKey      = contextKey("userID")
	tenantIDKey    = contextKey("tenantID")
	roleKey        = contextKey("role")
	designationKey = contextKey("designation")
	emailKey       = contextKey("email")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetTenantIDFromContext retrieves the authenticated user's tenant ID.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, tenantIDKey)
}

// GetRoleFromContext retrieves the authenticated user's workflow role.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	val, ok := stringFromContext(c, roleKey)
	if !ok {
		return "", false
	}
	role := domain.Role(val)
	return role, role.IsValid()
}

// GetDesignationFromContext retrieves the authenticated user's designation code.
func GetDesignationFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, designationKey)
}

// GetEmailFromContext retrieves the authenticated user's email address.
func GetEmailFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, emailKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	val := c.Request.Context().Value(key)
	if val == nil {
		return "", false
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}

// withIdentity stores the authenticated identity fields on a standard context.
func withIdentity(ctx context.Context, claims *utils.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, claims.Subject)
	ctx = context.WithValue(ctx, tenantIDKey, claims.TenantID)
	ctx = context.WithValue(ctx, roleKey, claims.Role)
	ctx = context.WithValue(ctx, designationKey, claims.DesignationCode)
	ctx = context.WithValue(ctx, emailKey, claims.Email)
	return ctx
}
