package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"

	"payflow/internal/middleware"
	"payflow/internal/repositories"
	"payflow/internal/repositories/cache"
	"payflow/internal/services/notification"
	"payflow/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// NotificationHandler exposes the notification pull API and the
// optional live stream.
type NotificationHandler struct {
	service notification.Service
	cache   *cache.CacheService
}

func NewNotificationHandler(service notification.Service, cache *cache.CacheService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		cache:   cache,
	}
}

// ListUnannounced handles GET /api/notifications: notifications not
// yet delivered through this endpoint, newest first.
func (h *NotificationHandler) ListUnannounced(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	notifications, err := h.service.ListUnannounced(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to list notifications")
	}
	return response.Success(c, "notifications", notifications)
}

// MarkAnnounced handles POST /api/notifications/:id/announced.
func (h *NotificationHandler) MarkAnnounced(c *fiber.Ctx) error {
	return h.mark(c, h.service.MarkAnnounced)
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	return h.mark(c, h.service.MarkRead)
}

func (h *NotificationHandler) mark(c *fiber.Ctx, op func(ctx context.Context, id, callerID uint) error) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid notification id")
	}

	if err := op(c.Context(), uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, notification.ErrNotOwner):
			return response.Forbidden(c, "notification belongs to another user")
		case errors.Is(err, repositories.ErrNotificationNotFound):
			return response.NotFound(c, "notification not found")
		default:
			return response.ServerError(c, "failed to update notification")
		}
	}
	return response.Success(c, "notification updated", nil)
}

// Stream handles GET /api/notifications/stream: a server-sent event
// feed of the caller's live notification channel. Delivery here is
// at-most-once; the pull API stays the durable source of truth.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}
	userID := claims.UserID

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub := h.cache.Subscribe(ctx, userID)
		defer sub.Close()

		for msg := range sub.Channel() {
			if _, err := fmt.Fprintf(w, "event: notification\ndata: %s\n\n", msg.Payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// client went away; drop the subscription
				return
			}
		}
	}))
	return nil
}
