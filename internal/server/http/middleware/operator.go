package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OperatorTokenHeader carries the shared secret of back-office callers.
const OperatorTokenHeader = "X-Operator-Token"

// OperatorRequired admits only requests carrying the configured operator token.
// An empty token disables the guarded routes entirely.
func OperatorRequired(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		got := []byte(c.GetHeader(OperatorTokenHeader))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
