package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymapi/internal/repository"
	"gymapi/internal/service"
)

// MachineHandler handles machine CRUD for authenticated users.
type MachineHandler struct {
	machineService service.MachineService
}

// NewMachineHandler creates a new machine handler.
func NewMachineHandler(machineService service.MachineService) *MachineHandler {
	return &MachineHandler{machineService: machineService}
}

// MachineRequest represents a machine create request.
type MachineRequest struct {
	Code        string `json:"code" validate:"omitempty,max=10"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// MachineUpdateRequest is a partial update; absent fields stay untouched.
type MachineUpdateRequest struct {
	Code        *string `json:"code" validate:"omitempty,max=10"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// List godoc
// @Summary List machines
// @Tags machines
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param id query int false "Filter by id"
// @Param search query string false "Substring search on name and description"
// @Param ordering query string false "Order by id, name or code; prefix with - for descending"
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /machines [get]
func (h *MachineHandler) List(c echo.Context) error {
	f := repository.MachineFilter{
		ID:       queryUint(c, "id"),
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
		Page:     queryPage(c),
	}

	machines, count, err := h.machineService.ListMachines(c.Request().Context(), f)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, PageResponse{Count: count, Page: f.Page, Results: machines})
}

// Get godoc
// @Summary Get a machine by id
// @Tags machines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Success 200 {object} model.Machine
// @Failure 404 {object} errors.ErrorResponse
// @Router /machines/{id} [get]
func (h *MachineHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	machine, err := h.machineService.GetMachine(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, machine)
}

// Create godoc
// @Summary Create a machine
// @Tags machines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MachineRequest true "Machine data"
// @Success 201 {object} model.Machine
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /machines [post]
func (h *MachineHandler) Create(c echo.Context) error {
	var req MachineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	machine, err := h.machineService.CreateMachine(c.Request().Context(), service.MachineInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, machine)
}

// Update godoc
// @Summary Update a machine (partial)
// @Tags machines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Param request body MachineUpdateRequest true "Fields to update"
// @Success 200 {object} model.Machine
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /machines/{id} [patch]
func (h *MachineHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req MachineUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	machine, err := h.machineService.UpdateMachine(c.Request().Context(), id, service.MachineUpdate{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, machine)
}

// Delete godoc
// @Summary Delete a machine
// @Tags machines
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /machines/{id} [delete]
func (h *MachineHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.machineService.DeleteMachine(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
