package handlers

import (
	"errors"
	"strconv"

	"payflow/internal/middleware"
	"payflow/internal/services/transfer"
	"payflow/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the transfer boundary operations.
type TransferHandler struct {
	service transfer.Service
}

func NewTransferHandler(service transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// Create handles POST /api/transfers. The response carries the record
// in its initial pending state; settlement continues in the
// background.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req struct {
		ReceiverID uint    `json:"receiver_id"`
		Amount     float64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	t, err := h.service.CreateTransfer(c.Context(), claims.UserID, req.ReceiverID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrInvalidAmount),
			errors.Is(err, transfer.ErrSelfTransfer),
			errors.Is(err, transfer.ErrReceiverNotFound):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "failed to create transfer")
		}
	}

	return response.Created(c, "transfer initiated", t)
}

// List handles GET /api/transfers: every transfer where the caller is
// sender or receiver, newest first.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	transfers, err := h.service.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to list transfers")
	}
	return response.Success(c, "transfers", transfers)
}

// Get handles GET /api/transfers/:id for status polling.
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid transfer id")
	}

	t, err := h.service.GetTransfer(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, transfer.ErrTransferNotFound) {
			return response.NotFound(c, "transfer not found")
		}
		return response.ServerError(c, "failed to load transfer")
	}
	if t.SenderID != claims.UserID && t.ReceiverID != claims.UserID {
		return response.Forbidden(c, "not a participant in this transfer")
	}

	return response.Success(c, "transfer", t)
}
