package middleware

import (
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncflowhq/syncflow/internal/types"
)

func newSessionApp() (*fiber.App, *types.Session) {
	app := fiber.New()
	var captured types.Session
	app.Get("/protected", RequireSession(), func(c *fiber.Ctx) error {
		captured = Session(c)
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &captured
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		ownerID    string
		ownerEmail string
		wantStatus int
		wantSess   types.Session
	}{
		{
			name:       "valid headers",
			ownerID:    "7",
			ownerEmail: "owner@example.com",
			wantStatus: fiber.StatusOK,
			wantSess:   types.Session{OwnerID: 7, OwnerEmail: "owner@example.com"},
		},
		{
			name:       "email is optional",
			ownerID:    "7",
			wantStatus: fiber.StatusOK,
			wantSess:   types.Session{OwnerID: 7},
		},
		{
			name:       "missing owner id",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "non-numeric owner id",
			ownerID:    "abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "zero owner id",
			ownerID:    "0",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "negative owner id",
			ownerID:    "-1",
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, captured := newSessionApp()

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.ownerID != "" {
				req.Header.Set(HeaderOwnerID, tt.ownerID)
			}
			if tt.ownerEmail != "" {
				req.Header.Set(HeaderOwnerEmail, tt.ownerEmail)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.wantSess, *captured)
			}
		})
	}
}

func TestSessionWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	var captured types.Session
	app.Get("/open", func(c *fiber.Ctx) error {
		captured = Session(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, captured.OwnerID)
}
