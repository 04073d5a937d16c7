package http

import (
	"net/http"

	"bank-credit-portal/internal/usecase/assessment"

	"github.com/labstack/echo/v4"
)

// assessmentHistoryLimit caps the history page.
const assessmentHistoryLimit = 20

type AssessmentHandler struct{ uc *assessment.Usecase }

func NewAssessmentHandler(uc *assessment.Usecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

type assessReq struct {
	Questionnaire map[string]string `json:"questionnaire"`
}

func (h *AssessmentHandler) Assess(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	var req assessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Assess(c.Request().Context(), id, req.Questionnaire)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AssessmentHandler) Latest(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	dto, err := h.uc.Latest(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssessmentHandler) History(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	list, err := h.uc.History(c.Request().Context(), id, assessmentHistoryLimit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"assessments": list})
}
