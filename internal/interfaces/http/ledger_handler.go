package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiranapos/kirana-api/internal/application/dto"
	applledger "github.com/kiranapos/kirana-api/internal/application/ledger"
	"github.com/kiranapos/kirana-api/internal/domain"
)

// LedgerHandler handles a customer's credit ledger: payments, advances,
// history and balance (protected).
type LedgerHandler struct {
	uc *applledger.UseCase
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(uc *applledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// RecordPayment godoc
// @Summary      Record a payment against a customer's outstanding balance
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Customer ID"
// @Param        body  body  dto.RecordPaymentRequest  true  "amount, payment_mode, note"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [post]
func (h *LedgerHandler) RecordPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.RecordPayment(c.Context(), id, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordAdvance godoc
// @Summary      Record money a customer deposits ahead of purchases
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Customer ID"
// @Param        body  body  dto.RecordAdvanceRequest  true  "amount, payment_mode, note"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/advances [post]
func (h *LedgerHandler) RecordAdvance(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.RecordAdvanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.RecordAdvance(c.Context(), id, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Customer ledger history, newest first
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Customer ID"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.LedgerEntryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/ledger [get]
func (h *LedgerHandler) History(c *fiber.Ctx) error {
	id := c.Params("id")
	page := pageFromQuery(c)
	out, err := h.uc.History(c.Context(), id, page)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Customer outstanding balance
// @Description  Positive means the customer owes the store, negative means the store holds an advance.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/balance [get]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.OutstandingBalance(c.Context(), id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

func ledgerError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "customer not found"})
	}
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount must be positive and mode must be cash, upi or card"})
	}
	if err == domain.ErrCustomerInactive {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CUSTOMER_INACTIVE", Message: "customer is deactivated"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
