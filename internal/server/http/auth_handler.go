package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skilltrackhq/backend/internal/server/services"
)

// dobLayout is the accepted date-of-birth format in registration payloads.
const dobLayout = "2006-01-02"

type AuthHandler struct {
	accounts *services.AccountService
	sessions *services.SessionService
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	DOB      string `json:"dob"`
	Reason   string `json:"reason"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.DOB == "" || req.Reason == "" {
		return badRequest("full_name, email, password, dob and reason are required")
	}
	if req.Age <= 0 {
		return badRequest("age must be positive")
	}
	dob, err := time.Parse(dobLayout, req.DOB)
	if err != nil {
		return badRequest("dob must be formatted as YYYY-MM-DD")
	}

	_, err = h.accounts.Register(c.Context(), services.RegisterParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		DOB:      dob,
		Reason:   req.Reason,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest("email and password are required")
	}

	pair, user, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setTokenCookies(c, pair, h.sessions.Tokens())

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"user": user.Sanitized()},
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return badRequest("oldPassword and newPassword are required")
	}

	email, _ := c.Locals(localEmail).(string)
	if err := h.accounts.ChangePassword(c.Context(), email, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Email == "" || req.Code == "" {
		return badRequest("email and code are required")
	}

	if err := h.accounts.VerifyEmail(c.Context(), req.Email, req.Code); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendCode(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Email == "" {
		return badRequest("email is required")
	}

	if err := h.accounts.ResendCode(c.Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) InitPasswordReset(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Email == "" {
		return badRequest("email is required")
	}

	if err := h.accounts.InitPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

type completeResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) CompletePasswordReset(c *fiber.Ctx) error {
	var req completeResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return badRequest("email, code and newPassword are required")
	}

	if err := h.accounts.CompletePasswordReset(c.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	var req deleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Password == "" {
		return badRequest("password is required")
	}

	id, _ := c.Locals(localUserID).(string)
	if err := h.accounts.DeleteAccount(c.Context(), id, req.Password); err != nil {
		return err
	}

	clearTokenCookies(c)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearTokenCookies(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshTokenCookie)
	if refreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Message: "refresh token is missing"})
	}

	pair, err := h.sessions.Refresh(refreshToken)
	if err != nil {
		return err
	}

	setTokenCookies(c, pair, h.sessions.Tokens())

	return c.JSON(fiber.Map{"accessToken": pair.AccessToken})
}
