package middleware

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/syncflowhq/syncflow/internal/types"
)

// Header names carrying the owner identity. Authentication itself is an
// external collaborator; the API trusts the gateway-verified identity
// headers and turns them into an explicit session object.
const (
	HeaderOwnerID    = "X-Owner-ID"
	HeaderOwnerEmail = "X-Owner-Email"

	sessionKey = "session"
)

// RequireSession extracts the owner identity headers into a types.Session
// stored in the request locals. Requests without a valid owner ID are
// rejected before reaching any handler.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderOwnerID)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(types.ErrInvalidInput("missing " + HeaderOwnerID + " header"))
		}
		ownerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || ownerID == 0 {
			return c.Status(fiber.StatusUnauthorized).
				JSON(types.ErrInvalidInput("invalid " + HeaderOwnerID + " header"))
		}

		c.Locals(sessionKey, types.Session{
			OwnerID:    uint(ownerID),
			OwnerEmail: c.Get(HeaderOwnerEmail),
		})
		return c.Next()
	}
}

// Session returns the session stored by RequireSession. The zero session is
// returned on routes that skipped the middleware.
func Session(c *fiber.Ctx) types.Session {
	sess, _ := c.Locals(sessionKey).(types.Session)
	return sess
}
