package handlers

import (
	"payflow/internal/middleware"
	"payflow/internal/repositories"
	"payflow/internal/services/transfer"
	"payflow/internal/services/user"
	"payflow/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const recentNotificationLimit = 10

// DashboardHandler aggregates the caller's transfers, recent
// notifications and the recipient list into one response.
type DashboardHandler struct {
	transfers     transfer.Service
	users         user.Service
	notifications repositories.NotificationRepository
}

func NewDashboardHandler(
	transfers transfer.Service,
	users user.Service,
	notifications repositories.NotificationRepository,
) *DashboardHandler {
	return &DashboardHandler{
		transfers:     transfers,
		users:         users,
		notifications: notifications,
	}
}

// Dashboard handles GET /api/dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	transfers, err := h.transfers.ListForUser(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to load transfers")
	}

	notifications, err := h.notifications.ListRecent(claims.UserID, recentNotificationLimit)
	if err != nil {
		return response.ServerError(c, "failed to load notifications")
	}

	recipients, err := h.users.ListRecipients(claims.UserID)
	if err != nil {
		return response.ServerError(c, "failed to load recipients")
	}

	return response.Success(c, "dashboard", fiber.Map{
		"transfers":     transfers,
		"notifications": notifications,
		"recipients":    recipients,
	})
}
