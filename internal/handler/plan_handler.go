package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymapi/internal/repository"
	"gymapi/internal/service"
)

// PlanHandler handles the role-scoped plan endpoints.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// PlanRequest represents a plan create request. The user field may be omitted
// by trainees, in which case the plan is created for themselves.
type PlanRequest struct {
	User            *uint   `json:"user"`
	Title           string  `json:"title" validate:"required,max=120"`
	Description     string  `json:"description"`
	DaysPerWeek     *int    `json:"days_per_week" validate:"omitempty,min=1,max=7"`
	Sets            *int    `json:"sets" validate:"omitempty,min=1"`
	Reps            *int    `json:"reps" validate:"omitempty,min=1"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active"`
	DaysOfWeek      *[]int  `json:"days_of_week"`
	Machines        *[]uint `json:"machines"`
}

// PlanUpdateRequest is a partial update; absent fields stay untouched.
// The owning trainee cannot be changed through update.
type PlanUpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=120"`
	Description     *string `json:"description"`
	DaysPerWeek     *int    `json:"days_per_week" validate:"omitempty,min=1,max=7"`
	Sets            *int    `json:"sets" validate:"omitempty,min=1"`
	Reps            *int    `json:"reps" validate:"omitempty,min=1"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active"`
	DaysOfWeek      *[]int  `json:"days_of_week"`
	Machines        *[]uint `json:"machines"`
}

// List godoc
// @Summary List plans visible to the caller
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param user query int false "Filter by owning trainee id"
// @Param is_active query bool false "Filter by active flag"
// @Param search query string false "Substring search on title"
// @Param ordering query string false "Order by id, title or days_per_week; prefix with - for descending"
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	f := repository.PlanFilter{
		UserID:   queryUint(c, "user"),
		IsActive: queryBool(c, "is_active"),
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
		Page:     queryPage(c),
	}

	plans, count, err := h.planService.ListPlans(c.Request().Context(), caller, f)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, PageResponse{Count: count, Page: f.Page, Results: plans})
}

// Get godoc
// @Summary Get a plan by id
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} model.Plan
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	plan, err := h.planService.GetPlan(c.Request().Context(), caller, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Create godoc
// @Summary Create a plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlanRequest true "Plan data"
// @Success 201 {object} model.Plan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.planService.CreatePlan(c.Request().Context(), caller, service.PlanInput{
		UserID:          req.User,
		Title:           req.Title,
		Description:     req.Description,
		DaysPerWeek:     req.DaysPerWeek,
		Sets:            req.Sets,
		Reps:            req.Reps,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
		DaysOfWeek:      req.DaysOfWeek,
		MachineIDs:      req.Machines,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, plan)
}

// Update godoc
// @Summary Update a plan (partial)
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Param request body PlanUpdateRequest true "Fields to update"
// @Success 200 {object} model.Plan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [patch]
func (h *PlanHandler) Update(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req PlanUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.planService.UpdatePlan(c.Request().Context(), caller, id, service.PlanUpdate{
		Title:           req.Title,
		Description:     req.Description,
		DaysPerWeek:     req.DaysPerWeek,
		Sets:            req.Sets,
		Reps:            req.Reps,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
		DaysOfWeek:      req.DaysOfWeek,
		MachineIDs:      req.Machines,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete godoc
// @Summary Delete a plan
// @Tags plans
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.planService.DeletePlan(c.Request().Context(), caller, id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
