package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *int64 {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return nil
	}
	return &userID
}

// GetMerchantID extracts the authenticated merchant ID from the Gin context
func GetMerchantID(c *gin.Context) int64 {
	return c.GetInt64("merchant_id")
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	return c.GetString("user_role")
}

// IsSuperAdmin checks if the user has the super admin role
func IsSuperAdmin(c *gin.Context) bool {
	return GetUserRole(c) == string(enum.RoleSuperAdmin)
}

// AuditMerchantID returns the caller's merchant ID for action log rows;
// super admins operating outside a merchant scope record nil.
func AuditMerchantID(c *gin.Context) *int64 {
	if id := GetMerchantID(c); id != 0 {
		return &id
	}
	return nil
}

// PathID parses a numeric path parameter.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// PaginationFromQuery builds pagination parameters from query string.
func PaginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		return pagination.DefaultPagination()
	}
	params.Validate()
	return params
}
