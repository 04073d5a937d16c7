package http

import (
	"errors"
	"net/http"

	accountDomain "bank-credit-portal/internal/domain/account"
	"bank-credit-portal/internal/usecase/ledger"
	"bank-credit-portal/pkg/money"

	"github.com/labstack/echo/v4"
)

// transactionListLimit caps the journal page returned to clients.
const transactionListLimit = 50

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

type moveMoneyReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	Remark string  `json:"remark" validate:"omitempty,max=255"`
}

func (h *LedgerHandler) GetAccount(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	dto, err := h.uc.GetAccount(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) Deposit(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	var req moveMoneyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Deposit(c.Request().Context(), id, money.FromFloat(req.Amount), req.Remark)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) Withdraw(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	var req moveMoneyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, balance, err := h.uc.Withdraw(c.Request().Context(), id, money.FromFloat(req.Amount), req.Remark)
	if err != nil {
		if errors.Is(err, accountDomain.ErrInsufficientBalance) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   err.Error(),
				Balance: balance.StringFixed(2),
			})
		}
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	id, ok := enterpriseIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid enterprise_id"})
	}
	list, err := h.uc.ListTransactions(c.Request().Context(), id, transactionListLimit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": list})
}
