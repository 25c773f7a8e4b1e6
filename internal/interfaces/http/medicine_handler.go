package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// MedicineHandler catálogo de medicamentos (protegido).
type MedicineHandler struct {
	uc *usecase.MedicineUseCase
}

// NewMedicineHandler construye el handler.
func NewMedicineHandler(uc *usecase.MedicineUseCase) *MedicineHandler {
	return &MedicineHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar medicamento
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMedicineRequest  true  "Datos del medicamento"
// @Success      201   {object}  dto.MedicineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/medicines [post]
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if verr := validateStruct(in); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener medicamento por ID
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.MedicineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [get]
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar medicamentos
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.MedicineListResponse
// @Router       /api/medicines [get]
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.UserContext(), c.Query("category"), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// pageFromQuery limit por defecto 20, máximo 100; offset no negativo.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	return page
}
