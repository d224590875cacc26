package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/service"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// AccountsHandler exposes CRUD maintenance of user records.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// List handles GET /api/users.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	users, err := h.accounts.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "users retrieved",
		"data": fiber.Map{
			"users": dto.NewUserResponses(users),
		},
	})
}

// Get handles GET /api/users/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("user id required", nil)
	}

	user, err := h.accounts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "user retrieved",
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
		},
	})
}

// Update handles PATCH /api/users/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("user id required", nil)
	}

	var req service.UpdateInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.accounts.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "user updated",
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
		},
	})
}

// Delete handles DELETE /api/users/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("user id required", nil)
	}

	confirmation, err := h.accounts.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": confirmation,
	})
}
