package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/databases/dbtest"
	helper "campusvibe_backend/internals/helpers"
)

func TestSetupRoutesWiring(t *testing.T) {
	db := dbtest.Open(t)
	notifier, _ := dbtest.Mailer(t)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	SetupRoutes(app, db, dbtest.Store(t), notifier)

	cases := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", fiber.MethodGet, "/health", fiber.StatusOK},
		{"metrics", fiber.MethodGet, "/metrics", fiber.StatusOK},
		{"public clubs", fiber.MethodGet, "/api/public/clubs", fiber.StatusOK},
		{"public events", fiber.MethodGet, "/api/public/events", fiber.StatusOK},
		{"admin needs token", fiber.MethodGet, "/api/a/users", fiber.StatusUnauthorized},
		{"organizer needs token", fiber.MethodGet, "/api/o/events/mine", fiber.StatusUnauthorized},
		{"me needs token", fiber.MethodGet, "/api/auth/me", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
