// Package auth exposes the registration and login endpoints.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/pkg/dto"
	authsvc "github.com/finbook/finbook/pkg/service/auth"
	"github.com/finbook/finbook/webapi/common"
)

// Routes registers the auth endpoints:
//   - POST /auth/register : Create a user and the two synthetic debt accounts.
//   - POST /auth/login    : Exchange credentials for a JWT.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register creates a user.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Register(c.Context(), authsvc.RegisterInput{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to register", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", dto.UserRead{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}
}

// Login authenticates a user and returns a JWT.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid identity or password", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
