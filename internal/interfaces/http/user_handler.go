package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/application/usecase"
	"github.com/leiritrix/crm-api/internal/domain"
)

// UserHandler administración de usuarios (rutas restringidas a admin en el router).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List devuelve todos los usuarios sin el password hash.
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(users)
}

// ToggleActive invierte el flag active del usuario.
// PUT /api/users/:id/toggle-active
func (h *UserHandler) ToggleActive(c *fiber.Ctx) error {
	active, err := h.uc.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToggleActiveResponse{Message: "estado actualizado", Active: active})
}

// ChangeRole asigna un nuevo rol. El rol llega como query param `role` o en
// el cuerpo {"role": "..."}.
// PUT /api/users/:id/role
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	role := c.Query("role")
	if role == "" {
		var body struct {
			Role string `json:"role"`
		}
		if err := c.BodyParser(&body); err == nil {
			role = body.Role
		}
	}
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role es requerido"})
	}
	if err := h.uc.ChangeRole(c.Context(), c.Params("id"), role); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido"})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "rol actualizado"})
}
