package middleware

import (
	"context"
	"strings"

	"forumapi/internal/auth"
	"forumapi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MissingAuthenticationMessage is returned for every rejected credential so
// clients cannot tell which check failed.
const MissingAuthenticationMessage = "Missing authentication"

// AccessTokenVerifier verifies bearer access tokens.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (auth.Identity, error)
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// On success the user ID and username are stored in locals and the user context.
func AuthRequired(verifier AccessTokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			return unauthenticated(c)
		}

		identity, err := verifier.VerifyAccessToken(tokenString)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "access token rejected", "error", err)
			return unauthenticated(c)
		}

		c.Locals("userID", identity.ID)
		c.Locals("username", identity.Username)
		ctx := context.WithValue(c.UserContext(), UserIDKey, identity.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// UserID returns the authenticated user ID stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func unauthenticated(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthenticatedError(MissingAuthenticationMessage))
}
