package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"citysafe/internal/domain"
)

// currentUserKey is the gin context key holding the resolved *domain.User.
const currentUserKey = "currentUser"

// requireAuth resolves the caller's identity from the Authorization header.
// Extraction, verification and user lookup all fail the same way: a single
// 401 that does not reveal whether the token was bad or the account is gone.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthenticated(c)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := h.tokens.Verify(token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(currentUserKey).(*domain.User)
}
