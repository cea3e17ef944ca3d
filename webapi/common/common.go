// Package common holds the response envelope, RFC 9457 problem details and
// request binding helpers shared by all API handlers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
)

// Response is the envelope for success responses.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes a success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes a problem+json response. The status defaults to
// the mapping of err via ErrorToStatusCode; pass extras to override: a string
// becomes the detail, an int the status code.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, extra := range extras {
		switch v := extra.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
			status = v
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrDebtNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrRepayExceedsPrincipal):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAmountMustBePositive),
		errors.Is(err, domain.ErrSameAccountTransfer),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrInvalidCategoryType),
		errors.Is(err, domain.ErrInvalidDebtKind),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it with
// go-playground/validator. On failure the error response is already written
// and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// ParsePage reads the page and page_size query parameters and clamps them.
func ParsePage(c *fiber.Ctx) dto.Page {
	page := dto.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("page_size", 0),
	}
	return page.Normalize()
}
