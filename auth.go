package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDHeader carries the authenticated subject id, set by the auth gateway
// in front of this API. Sessions, passwords, and token verification live
// there; this service only validates the id's shape and scopes queries by it.
const userIDHeader = "X-User-ID"

// identityMiddleware validates the forwarded user id and sets user_id on the
// context. The id must be a UUID (the auth service issues UUID subjects);
// anything else is rejected before it can reach a query.
func (h *Handler) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		if raw == "" {
			apiError(c, http.StatusUnauthorized, "missing "+userIDHeader+" header")
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid user id")
			c.Abort()
			return
		}

		c.Set("user_id", id.String())
		c.Next()
	}
}

// userID returns the authenticated user id set by identityMiddleware.
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}
