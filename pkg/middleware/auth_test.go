package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/finbook/finbook/pkg/config"
)

func testJwtConfig() *config.Jwt {
	return &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
}

func TestProtected_MissingToken(t *testing.T) {
	app := fiber.New()
	app.Use(Protected(testJwtConfig()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected unauthorized, got 200")
	}
}

func TestProtected_ValidToken(t *testing.T) {
	cfg := testJwtConfig()
	app := fiber.New()
	app.Use(Protected(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = "00000000-0000-0000-0000-000000000001"
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestProtected_WrongSigningKey(t *testing.T) {
	app := fiber.New()
	app.Use(Protected(testJwtConfig()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	token := jwt.New(jwt.SigningMethodHS256)
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected %d, got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestJwtError_Malformed(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("Missing or malformed JWT"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected %d, got %d", fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected %d, got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}
