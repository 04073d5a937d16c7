package http

import (
	"net/http"

	"bank-credit-portal/internal/usecase/enterprise"

	"github.com/labstack/echo/v4"
)

type EnterpriseHandler struct{ uc *enterprise.Usecase }

func NewEnterpriseHandler(uc *enterprise.Usecase) *EnterpriseHandler {
	return &EnterpriseHandler{uc: uc}
}

type registerReq struct {
	CompanyName       string `json:"company_name"       validate:"required"`
	CreditCode        string `json:"credit_code"        validate:"omitempty,len=18"`
	LegalPerson       string `json:"legal_person"`
	RegisteredCapital string `json:"registered_capital"`
	Industry          string `json:"industry"`
	Address           string `json:"address"`
}

func (h *EnterpriseHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), enterprise.RegisterInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *EnterpriseHandler) Get(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
