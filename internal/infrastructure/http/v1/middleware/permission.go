// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	appctx "tillpoint/internal/core/context"
)

// AdminRole grants every module.
const AdminRole = "admin"

// RequireModule middleware checks if the user's role grants a module.
func RequireModule(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if user.Role == AdminRole {
			c.Next()
			return
		}

		for _, granted := range user.Modules {
			if granted == module {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_module", module),
		)
		c.Abort()
	}
}
