package notificationapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ejeanjules/capstone-project/board/notification"
	"github.com/Ejeanjules/capstone-project/board/notification/notificationsrv"
	"github.com/Ejeanjules/capstone-project/pkg/iam/auth"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Handlers provides HTTP handlers for notification operations
type Handlers struct {
	service *notificationsrv.Service
}

// NewHandlers creates a new notification handlers instance
func NewHandlers(service *notificationsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// List returns the caller's notifications, newest first. Pass unread=true to
// filter to unread only.
// GET /api/v1/notifications
func (h *Handlers) List(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return notification.ErrNotRecipient()
	}

	filter := notification.ListFilter{
		UnreadOnly: c.QueryBool("unread", false),
	}

	notifications, err := h.service.List(c.Context(), authContext.UserID, filter, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(notifications)
}

// UnreadCount returns how many unread notifications the caller has
// GET /api/v1/notifications/count
func (h *Handlers) UnreadCount(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return notification.ErrNotRecipient()
	}

	count, err := h.service.UnreadCount(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkRead flags one notification as read
// PUT /api/v1/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return notification.ErrNotRecipient()
	}

	id := kernel.NotificationID(c.Params("id"))
	if id.IsEmpty() {
		return notification.ErrNotificationNotFound().WithDetail("id", "missing or empty")
	}

	n, err := h.service.MarkRead(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(n)
}

// MarkAllRead flags every notification of the caller as read
// PUT /api/v1/notifications/mark-all-read
func (h *Handlers) MarkAllRead(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return notification.ErrNotRecipient()
	}

	count, err := h.service.MarkAllRead(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"marked_read": count})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	// Ensure valid values
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all notification routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/v1/notifications",
		authMiddleware.Authenticate(),
	)

	api.Get("/",
		authMiddleware.RequireScope(auth.ScopeNotificationsRead),
		handlers.List,
	)

	api.Get("/count",
		authMiddleware.RequireScope(auth.ScopeNotificationsRead),
		handlers.UnreadCount,
	)

	api.Put("/mark-all-read",
		authMiddleware.RequireScope(auth.ScopeNotificationsWrite),
		handlers.MarkAllRead,
	)

	api.Put("/:id/read",
		authMiddleware.RequireScope(auth.ScopeNotificationsWrite),
		handlers.MarkRead,
	)
}
