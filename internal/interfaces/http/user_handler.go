package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// UserHandler perfil del usuario autenticado.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
