package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiranapos/kirana-api/internal/application/billing"
	"github.com/kiranapos/kirana-api/internal/application/dto"
	"github.com/kiranapos/kirana-api/internal/domain"
)

// BillingHandler handles bill creation, lookup and cancellation (protected).
type BillingHandler struct {
	create *billing.CreateBillUseCase
	cancel *billing.CancelBillUseCase
}

// NewBillingHandler builds the handler.
func NewBillingHandler(create *billing.CreateBillUseCase, cancel *billing.CancelBillUseCase) *BillingHandler {
	return &BillingHandler{create: create, cancel: cancel}
}

// Create godoc
// @Summary      Create a bill from a cart
// @Description  Deducts stock, records the payment and, for credit sales, appends to the customer ledger. All or nothing.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "customer_id, payment_mode, discount_total, items"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.create.CreateBill(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid cart or payment mode"})
		}
		if err == domain.ErrCustomerRequired {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CUSTOMER_REQUIRED", Message: "credit sales need a customer"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product or customer not found"})
		}
		if err == domain.ErrCustomerInactive {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CUSTOMER_INACTIVE", Message: "customer is deactivated"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a bill with its items
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.create.GetBill(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List bills, newest first
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.BillResponse
// @Router       /api/bills [get]
func (h *BillingHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.create.ListBills(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancel a bill and restore its stock
// @Description  Ledger entries from the sale are kept; settle them with a payment if needed.
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/cancel [post]
func (h *BillingHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.cancel.CancelBill(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
		}
		if err == domain.ErrBillCancelled {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: "bill is already cancelled"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
