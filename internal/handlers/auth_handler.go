package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/internal/validation"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var payload validation.UserPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return apperrors.NewBadRequest("Invalid request body")
	}

	if err := h.validate.ValidateUser(&payload); err != nil {
		return err
	}

	role, err := models.ParseRole(*payload.Role)
	if err != nil {
		return apperrors.NewValidation("Invalid data", validation.FieldErrors{
			"role": {"Role must be 'seller' or 'admin'"},
		})
	}

	user, token, err := h.authService.RegisterUser(*payload.Name, *payload.Email, *payload.Password, role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles user login and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return apperrors.NewBadRequest("Invalid request body")
	}

	user, token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// HandleForgotPassword starts the password reset flow.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password reset instructions have been sent to your email.",
	})
}

// HandleResetPassword completes the password reset flow.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}

	if len(req.NewPassword) < 8 {
		return apperrors.NewValidation("Invalid data", validation.FieldErrors{
			"newPassword": {"Password must have at least 8 characters"},
		})
	}

	if err := h.authService.ResetPassword(req.Email, req.Token, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Your password has been successfully updated.",
	})
}
