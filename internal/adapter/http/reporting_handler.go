package http

import (
	"net/http"

	"bank-credit-portal/internal/usecase/reporting"

	"github.com/labstack/echo/v4"
)

type ReportingHandler struct{ uc *reporting.Usecase }

func NewReportingHandler(uc *reporting.Usecase) *ReportingHandler {
	return &ReportingHandler{uc: uc}
}

func (h *ReportingHandler) Overview(c echo.Context) error {
	dto, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
