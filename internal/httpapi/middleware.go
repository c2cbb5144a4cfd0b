package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tracker/internal/auth"
	"tracker/internal/service"
)

const identityKey = "identity"

// Authenticator resolves an access token to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (auth.Identity, error)
}

// Authenticate rejects requests without a valid bearer access token and
// stores the verified identity for later handlers.
func Authenticate(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fmt.Errorf("%w: authorization header is required", service.ErrUnauthorized)
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return fmt.Errorf("%w: use Authorization: Bearer <token>", service.ErrUnauthorized)
		}

		id, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(identityKey, id)
		return c.Next()
	}
}

// Require admits the request only if the authenticated role may invoke op.
func Require(op auth.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := identityFrom(c)
		if !ok {
			return fmt.Errorf("%w: missing identity", service.ErrUnauthorized)
		}
		if err := auth.Authorize(op, id); err != nil {
			return err
		}
		return c.Next()
	}
}

func identityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}
