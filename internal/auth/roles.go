package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellfood-service/internal/domain"
	apperrors "github.com/spec-kit/wellfood-service/pkg/util"
)

// RequireAdmin ensures the authenticated principal is an admin.
func RequireAdmin() fiber.Handler {
	return requireRole(domain.RoleAdmin, "Admin access required")
}

// RequireUser ensures the authenticated principal is a regular customer.
func RequireUser() fiber.Handler {
	return requireRole(domain.RoleUser, "User access required")
}

// RequireAnyRole ensures the caller is authenticated, regardless of role.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		return c.Next()
	}
}

func requireRole(required domain.Role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if principal.Role != required {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
