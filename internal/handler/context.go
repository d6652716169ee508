package handler

import "github.com/gin-gonic/gin"

// userIDKey is the gin context key the session middleware stores the
// authenticated user id under.
const userIDKey = "user_id"

// CurrentUserID returns the authenticated user id set by SessionMiddleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
