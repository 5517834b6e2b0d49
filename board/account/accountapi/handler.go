package accountapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ejeanjules/capstone-project/board/account"
	"github.com/Ejeanjules/capstone-project/board/account/accountsrv"
	"github.com/Ejeanjules/capstone-project/pkg/iam/auth"
)

// Handlers provides HTTP handlers for account operations
type Handlers struct {
	service *accountsrv.Service
}

// NewHandlers creates a new account handlers instance
func NewHandlers(service *accountsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates an account and returns a token
// POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req account.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return account.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login authenticates and returns a token
// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req account.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return account.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return account.ErrInvalidCredentials()
	}

	user, err := h.service.CurrentUser(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// RegisterRoutes registers all account routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/v1/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)

	api.Get("/me",
		authMiddleware.Authenticate(),
		handlers.Me,
	)
}
