// Package webapi provides the HTTP surface of the application, organized
// into sub-packages per concern:
//   - auth: registration and login
//   - account: account CRUD and the total balance listing
//   - category: category CRUD
//   - transaction: financial records and their balance adjustments
//   - transfer: account-to-account transfers
//   - debt: debts, lends and repayments
//   - stats: monthly statistics and yearly analytics
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/finbook/finbook/pkg/app"
	accountweb "github.com/finbook/finbook/webapi/account"
	authweb "github.com/finbook/finbook/webapi/auth"
	categoryweb "github.com/finbook/finbook/webapi/category"
	"github.com/finbook/finbook/webapi/common"
	debtweb "github.com/finbook/finbook/webapi/debt"
	statsweb "github.com/finbook/finbook/webapi/stats"
	transactionweb "github.com/finbook/finbook/webapi/transaction"
	transferweb "github.com/finbook/finbook/webapi/transfer"
)

// SetupApp initializes Fiber with the shared middleware stack and mounts
// every route group.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := common.ErrorToStatusCode(err)
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	// Rate limit keyed by client IP, honoring proxy headers.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Finbook API is running!")
	})

	authweb.Routes(fiberApp, a.AuthService)
	accountweb.Routes(fiberApp, a.AccountService, a.AuthService, a.Config)
	categoryweb.Routes(fiberApp, a.CategoryService, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.LedgerService, a.AuthService, a.Config)
	transferweb.Routes(fiberApp, a.LedgerService, a.AuthService, a.Config)
	debtweb.Routes(fiberApp, a.DebtService, a.AuthService, a.Config)
	statsweb.Routes(fiberApp, a.StatsService, a.AuthService, a.Config)
	return fiberApp
}
