package middleware

import "github.com/gin-gonic/gin"

// userIDHeader names the caller identity header. The engine runs behind an
// authenticating gateway; it records attribution, it does not verify it.
const userIDHeader = "X-User-ID"

// systemUserID is recorded when the caller sends no identity.
const systemUserID = "system"

// GetUserID returns the caller identity recorded on audit fields.
func GetUserID(c *gin.Context) string {
	if userID := c.GetHeader(userIDHeader); userID != "" {
		return userID
	}
	return systemUserID
}
