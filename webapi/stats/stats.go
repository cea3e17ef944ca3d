// Package stats exposes the reporting endpoints.
package stats

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/middleware"
	authsvc "github.com/finbook/finbook/pkg/service/auth"
	statssvc "github.com/finbook/finbook/pkg/service/stats"
	"github.com/finbook/finbook/webapi/common"
)

// Routes registers the reporting endpoints:
//   - GET /statistics : Per-category totals for one month. ?year&month&type.
//   - GET /analytics  : Per-month totals for one year. ?year&type.
func Routes(app *fiber.App, statsSvc *statssvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Get("/statistics", protected, Statistics(statsSvc, authSvc))
	app.Get("/analytics", protected, Analytics(statsSvc, authSvc))
}

// Statistics returns per-category totals for one month.
func Statistics(statsSvc *statssvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		now := time.Now().UTC()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))
		if month < 1 || month > 12 {
			return common.ProblemDetailsJSON(c, "Invalid month", nil, "month must be between 1 and 12", fiber.StatusBadRequest)
		}
		t := domain.Expense
		if raw := c.Query("type"); raw != "" {
			if t, err = domain.ParseCategoryType(raw); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid category type", err)
			}
		}
		result, err := statsSvc.Statistics(c.Context(), userID, year, month, t)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute statistics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statistics", result)
	}
}

// Analytics returns per-month totals for one year.
func Analytics(statsSvc *statssvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		year := c.QueryInt("year", time.Now().UTC().Year())
		t := domain.Expense
		if raw := c.Query("type"); raw != "" {
			if t, err = domain.ParseCategoryType(raw); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid category type", err)
			}
		}
		result, err := statsSvc.Analytics(c.Context(), userID, year, t)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute analytics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Analytics", fiber.Map{"analytics": result})
	}
}
