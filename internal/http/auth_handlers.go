package http

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/auth"
	"github.com/vantro-labs/coinledger-backend/internal/domain"
)

type AuthHandler struct {
	Store    UserStore
	Mailer   Mailer
	Secret   []byte
	TokenTTL time.Duration
}

const resetTokenTTL = time.Hour

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password required")
	}
	if len(body.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	hashed, err := auth.HashPassword(body.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	user, err := h.Store.CreateUser(userContext(c), body.Name, body.Email, hashed)
	if errors.Is(err, ErrEmailTaken) {
		return fiber.NewError(fiber.StatusBadRequest, "email already registered")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	token, err := auth.GenerateToken(h.Secret, user.ID, h.TokenTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	user, err := h.Store.GetByEmail(userContext(c), body.Email)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load user")
	}

	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.GenerateToken(h.Secret, user.ID, h.TokenTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.JSON(authResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.Store.GetByID(userContext(c), userID)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not load user")
	}

	return c.JSON(user)
}

// ForgotPassword always answers 200 so callers cannot probe which emails exist.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var body forgotPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email required")
	}

	token, tokenHash, err := auth.NewResetToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	ctx := userContext(c)
	err = h.Store.SetResetToken(ctx, body.Email, tokenHash, time.Now().Add(resetTokenTTL))
	if err == nil {
		if mailErr := h.Mailer.SendPasswordReset(ctx, body.Email, token); mailErr != nil {
			log.Printf("failed to send reset mail to %s: %v", body.Email, mailErr)
		}
	} else if !errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	return c.JSON(fiber.Map{"message": "if the email exists, a reset link has been sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var body resetPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if strings.TrimSpace(body.Token) == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token and password required")
	}
	if len(body.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	hashed, err := auth.HashPassword(body.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	err = h.Store.ResetPassword(userContext(c), auth.HashResetToken(body.Token), hashed)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired token")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
