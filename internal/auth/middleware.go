package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/repository"
	apperrors "github.com/spec-kit/wellfood-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, resolved from the store.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  domain.Role
}

// AuthMiddleware validates bearer tokens and loads principals. Verified
// claims are always re-resolved against the store, so a deleted account
// is rejected even while its token is still within the expiry window.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	admins repository.AdminRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, admins repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, admins: admins}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Access token required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Access token required")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Invalid or expired token")
	}
	if claims.SubjectID == "" || !claims.Role.Valid() {
		return apperrors.NewUnauthorized("Invalid token format")
	}

	principal := &Principal{Role: claims.Role}

	switch claims.Role {
	case domain.RoleAdmin:
		admin, err := m.admins.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apperrors.NewUnauthorized("User not found")
			}
			return apperrors.MapError(err)
		}
		principal.ID = admin.ID
		principal.Email = admin.Email
		principal.Name = admin.Name
	default:
		user, err := m.users.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apperrors.NewUnauthorized("User not found")
			}
			return apperrors.MapError(err)
		}
		principal.ID = user.ID
		principal.Email = user.Email
		principal.Name = user.Name
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
