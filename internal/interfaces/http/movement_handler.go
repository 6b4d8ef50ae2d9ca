package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
)

const movementNotFound = "movimiento no encontrado"

// MovementHandler CRUD de un tipo de movimiento. Se monta una instancia por endpoint
// (/api/inputs, /api/outputs, /api/sales); el tipo lo fija la ruta, nunca el cuerpo.
type MovementHandler struct {
	uc   *inventory.MovementUseCase
	kind entity.MovementType
}

// NewMovementHandler construye el handler para kind.
func NewMovementHandler(uc *inventory.MovementUseCase, kind entity.MovementType) *MovementHandler {
	return &MovementHandler{uc: uc, kind: kind}
}

// List godoc
// @Summary      Listar movimientos del tipo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inputs [get]
// @Router       /api/outputs [get]
// @Router       /api/sales [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return respondError(c, err, movementNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Cantidad y precio aceptan número o texto; vacío o inválido se toma como 0.
// @Description  El stock del producto se concilia en la misma transacción.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inputs [post]
// @Router       /api/outputs [post]
// @Router       /api/sales [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return respondError(c, err, productNotFound)
	}
	audit(c, "create", string(h.kind), out.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "Datos del movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inputs/{id} [put]
// @Router       /api/outputs/{id} [put]
// @Router       /api/sales/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), h.kind, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, movementNotFound)
	}
	audit(c, "update", string(h.kind), out.ID)
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id} [delete]
// @Router       /api/outputs/{id} [delete]
// @Router       /api/sales/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), h.kind, c.Params("id")); err != nil {
		return respondError(c, err, movementNotFound)
	}
	audit(c, "delete", string(h.kind), c.Params("id"))
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}
