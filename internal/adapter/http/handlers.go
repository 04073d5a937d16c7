package http

import (
	"errors"
	"net/http"
	"time"

	accountDomain "bank-credit-portal/internal/domain/account"
	assessmentDomain "bank-credit-portal/internal/domain/assessment"
	enterpriseDomain "bank-credit-portal/internal/domain/enterprise"
	loanDomain "bank-credit-portal/internal/domain/loan"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// domainError maps usecase sentinel errors to HTTP codes. Anything
// unrecognized is a 500 with a generic body.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, enterpriseDomain.ErrNotFound),
		errors.Is(err, accountDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, assessmentDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, accountDomain.ErrInvalidAmount),
		errors.Is(err, loanDomain.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// enterpriseIDParam validates the :enterprise_id path segment.
func enterpriseIDParam(c echo.Context) (string, bool) {
	id := c.Param("enterprise_id")
	return id, reHex32.MatchString(id)
}
