package middleware

import (
	"net/http/httptest"
	"testing"

	"Aahar-Backend/domain"
	"Aahar-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, jwt.JWTService) {
	t.Helper()
	jwtService := jwt.NewJWTService("middleware-secret")
	m := NewMiddleware()

	app := fiber.New()
	app.Use(m.MetricsMiddleware())
	app.Get("/me", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + ":" + c.Locals("role").(string))
	})
	app.Get("/admin", m.AuthMiddleware(jwtService), m.RequireRoles(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, jwtService
}

func TestAuthMiddleware(t *testing.T) {
	app, jwtService := newTestApp(t)
	token, err := jwtService.GenerateTokenUser("user-7", domain.RoleDonor)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	app, jwtService := newTestApp(t)

	for role, status := range map[string]int{
		domain.RoleAdmin:     fiber.StatusNoContent,
		domain.RoleVolunteer: fiber.StatusForbidden,
	} {
		token, err := jwtService.GenerateTokenUser("user-1", role)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, role)
	}
}
