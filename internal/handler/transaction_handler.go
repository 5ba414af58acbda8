package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"minibank/internal/auth"
	apperrors "minibank/internal/errors"
	"minibank/internal/logging"
	"minibank/internal/model"
	"minibank/internal/service"
	"minibank/internal/view"
)

// TransactionHandler serves the balance page and balance changes.
type TransactionHandler struct {
	accountService service.AccountService
	log            logging.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(accountService service.AccountService, log logging.Logger) *TransactionHandler {
	return &TransactionHandler{accountService: accountService, log: log}
}

// AmountRequest is the deposit/withdraw body. The amount may be sent as a
// JSON number or a numeric string.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"25"`
}

// BalanceResponse is returned after a balance change.
type BalanceResponse struct {
	Balance         string                `json:"balance"`
	TransactionType model.TransactionType `json:"transactionType"`
}

// Transactions godoc
// @Summary Balance page with deposit and withdraw controls
// @Tags transactions
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "HTML page"
// @Failure 401 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /transactions [get]
func (h *TransactionHandler) Transactions(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token missing")
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), claims.UserID)
	if err != nil {
		return h.fail(c, err, "get account")
	}

	return c.Render(http.StatusOK, view.TransactionsPage, view.TransactionsData{
		Balance:       account.Amount.String(),
		Authorization: c.Request().Header.Get(echo.HeaderAuthorization),
	})
}

// Deposit godoc
// @Summary Deposit into the caller's account
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /deposit [post]
func (h *TransactionHandler) Deposit(c echo.Context) error {
	return h.change(c, h.accountService.Deposit)
}

// Withdraw godoc
// @Summary Withdraw from the caller's account
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /withdraw [post]
func (h *TransactionHandler) Withdraw(c echo.Context) error {
	return h.change(c, h.accountService.Withdraw)
}

type balanceChange func(ctx context.Context, userID uint, amount decimal.Decimal) (*model.Account, error)

func (h *TransactionHandler) change(c echo.Context, apply balanceChange) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token missing")
	}

	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidAmount.Error())
	}

	account, err := apply(c.Request().Context(), claims.UserID, req.Amount)
	if err != nil {
		return h.fail(c, err, "change balance")
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		Balance:         account.Amount.String(),
		TransactionType: account.TransactionType,
	})
}

// Me godoc
// @Summary Claims of the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Claims
// @Failure 401 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Router /me [get]
func (h *TransactionHandler) Me(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token missing")
	}
	return c.JSON(http.StatusOK, claims)
}

func (h *TransactionHandler) fail(c echo.Context, err error, op string) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.IsInternal() {
		h.log.Error(c.Request().Context(), op, "error", err)
	}
	return httpErr.Echo()
}
