package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/application/usecase"
	"github.com/leiritrix/crm-api/internal/domain"
)

// SaleHandler CRUD de ventas y asignación de comisión.
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear venta (el vendedor es el usuario autenticado)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "datos de la venta"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.Create(c.Context(), GetUser(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de venta inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List devuelve las ventas visibles para el usuario (scope por rol), con
// filtros opcionales status, category, seller_id y search.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	q := usecase.ListQuery{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		SellerID: c.Query("seller_id"),
		Search:   c.Query("search"),
	}
	sales, err := h.uc.List(c.Context(), GetUser(c), q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtro inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sales)
}

// Get devuelve una venta por id (con chequeo de propiedad).
// GET /api/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	sale, err := h.uc.Get(c.Context(), GetUser(c), c.Params("id"))
	if err != nil {
		return h.saleError(c, err)
	}
	return c.JSON(sale)
}

// Update aplica un parche parcial (con chequeo de propiedad).
// PUT /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var patch dto.UpdateSaleRequest
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.Update(c.Context(), GetUser(c), c.Params("id"), patch)
	if err != nil {
		return h.saleError(c, err)
	}
	return c.JSON(sale)
}

// Delete elimina la venta (ruta restringida a admin/backoffice en el router).
// DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.saleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "venta eliminada"})
}

// AssignCommission asigna la comisión (restringido a admin/backoffice).
// PUT /api/sales/:id/commission
func (h *SaleHandler) AssignCommission(c *fiber.Ctx) error {
	var in dto.CommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.AssignCommission(c.Context(), GetUser(c), c.Params("id"), in.Commission)
	if err != nil {
		return h.saleError(c, err)
	}
	return c.JSON(sale)
}

// saleError mapeo común de errores de dominio a HTTP para las rutas de ventas.
func (h *SaleHandler) saleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSaleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SALE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de venta inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
