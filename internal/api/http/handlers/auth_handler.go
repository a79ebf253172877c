package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wellfood-service/internal/api/dto"
	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/service"
)

// AuthHandler exposes signup/login endpoints for customers.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password and phone are required")
	}

	user, token, exp, err := h.auth.Signup(c.Context(), req.Name, req.Email, req.Password, req.Phone, req.Address)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Account created successfully",
		"token":     token,
		"expiresAt": exp,
		"user":      dto.NewUserResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password are required")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Login successful",
		"token":     token,
		"expiresAt": exp,
		"user":      dto.NewUserResponse(user),
	})
}

// Me handles GET /api/auth/me for any authenticated principal.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication required")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":    principal.ID,
			"name":  principal.Name,
			"email": principal.Email,
			"role":  principal.Role,
		},
	})
}

// SendOTP handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" {
		return fiber.NewError(http.StatusBadRequest, "phoneNumber is required")
	}

	if err := h.auth.RequestOTP(c.Context(), req.PhoneNumber); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "OTP sent"})
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PhoneNumber == "" || req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "phoneNumber and otp are required")
	}

	if err := h.auth.VerifyOTP(c.Context(), req.PhoneNumber, req.Code); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "verified": true})
}
