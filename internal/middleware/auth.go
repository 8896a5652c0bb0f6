package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/service"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"go.uber.org/zap"
)

const adminKey = "admin"

// AdminAuth requires a bearer session token that resolves to an existing
// admin user and stores that user in the context
func AdminAuth(admins *service.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return service.ErrUnauthorized("Missing authorization token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				log.Warn("Invalid Authorization header format")
				return service.ErrUnauthorized("Invalid authorization format, expected Bearer token")
			}

			admin, err := admins.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				log.Warn("Admin authentication failed", zap.Error(err))
				return err
			}

			c.Set(adminKey, admin)
			return next(c)
		}
	}
}

// SharedSecret guards a route with the ?secret= query parameter
func SharedSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			given := c.QueryParam("secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
				logger.FromEcho(c).Warn("Rejected admin-user request with bad secret")
				return service.ErrUnauthorized("Unauthorized")
			}
			return next(c)
		}
	}
}

// AdminFromContext returns the admin stored by AdminAuth
func AdminFromContext(c echo.Context) (*model.AdminUser, bool) {
	admin, ok := c.Get(adminKey).(*model.AdminUser)
	return admin, ok
}
