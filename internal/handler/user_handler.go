package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymapi/internal/authz"
	"gymapi/internal/repository"
	"gymapi/internal/service"
)

// UserHandler handles the role-scoped user endpoints.
type UserHandler struct {
	userService service.UserService
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// UserUpdateRequest is a partial update; absent fields stay untouched.
// Role, is_active, trainer and clear_trainer are admin-only.
type UserUpdateRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email" validate:"omitempty,email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Password     *string `json:"password" validate:"omitempty,min=6"`
	Role         *string `json:"role" validate:"omitempty,oneof=admin trainer trainee"`
	IsActive     *bool   `json:"is_active"`
	Trainer      *uint   `json:"trainer"`
	ClearTrainer bool    `json:"clear_trainer"`
}

// List godoc
// @Summary List users visible to the caller
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param role query string false "Filter by role"
// @Param is_active query bool false "Filter by active flag"
// @Param trainer query int false "Filter by trainer id"
// @Param search query string false "Substring search on username, email and names"
// @Param ordering query string false "Order by username, first_name, last_name or id; prefix with - for descending"
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	f := repository.UserFilter{
		IsActive:  queryBool(c, "is_active"),
		TrainerID: queryUint(c, "trainer"),
		Search:    c.QueryParam("search"),
		Ordering:  c.QueryParam("ordering"),
		Page:      queryPage(c),
	}
	if raw := c.QueryParam("role"); raw != "" {
		role, err := authz.ParseRole(raw)
		if err != nil {
			return domainError(err)
		}
		f.Role = &role
	}

	users, count, err := h.userService.ListUsers(c.Request().Context(), caller, f)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, PageResponse{Count: count, Page: f.Page, Results: users})
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), caller, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Me godoc
// @Summary Caller's own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetProfile(c.Request().Context(), caller)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Create a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "User data"
// @Success 201 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), caller, service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      authz.Role(req.Role),
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user (partial)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UserUpdateRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UserUpdate{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Password:     req.Password,
		IsActive:     req.IsActive,
		TrainerID:    req.Trainer,
		ClearTrainer: req.ClearTrainer,
	}
	if req.Role != nil {
		role := authz.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), caller, id, input)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Deactivate a user (admin only; accounts are never hard-deleted)
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), caller, id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Activate godoc
// @Summary Activate a user (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id}/activate [post]
func (h *UserHandler) Activate(c echo.Context) error {
	return h.setActive(c, true)
}

// Deactivate godoc
// @Summary Deactivate a user (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *UserHandler) setActive(c echo.Context, active bool) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var user interface{}
	if active {
		user, err = h.userService.ActivateUser(c.Request().Context(), caller, id)
	} else {
		user, err = h.userService.DeactivateUser(c.Request().Context(), caller, id)
	}
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// TraineeChoices godoc
// @Summary Trainees selectable for plan assignment
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/trainee-choices [get]
func (h *UserHandler) TraineeChoices(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	trainees, err := h.userService.TraineeChoices(c.Request().Context(), caller)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, trainees)
}
