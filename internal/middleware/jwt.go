package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hpsapps/daily/internal/service"
	appErrors "github.com/hpsapps/daily/pkg/errors"
	"github.com/hpsapps/daily/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated subject.
const ContextUserKey = "currentUser"

// JWT protects mutating routes by requiring a valid access token. When the
// auth service reports auth as disabled the guard passes everything through,
// which is the single-operator development mode.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		subject, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, subject)
		c.Next()
	}
}
