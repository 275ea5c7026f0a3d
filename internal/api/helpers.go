package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// currentUserID pulls the authenticated user ID set by the JWT middleware.
// Aborts with 401 when it is missing.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID.(uint), true
}

// currentUsername pulls the authenticated username, empty when absent.
func currentUsername(c *gin.Context) string {
	if name, exists := c.Get("username"); exists {
		return name.(string)
	}
	return ""
}

// memberIDQuery parses the required member_id query parameter. Aborts with
// 400 when it is missing or malformed.
func memberIDQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("member_id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_id required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member_id"})
		return 0, false
	}
	return uint(id), true
}

// idParam parses a numeric path parameter. Aborts with 400 when malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
