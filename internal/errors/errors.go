package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found or outside the caller's scope.
	ErrUserNotFound = errors.New("user not found")
	// ErrMachineNotFound is returned when a machine is not found.
	ErrMachineNotFound = errors.New("machine not found")
	// ErrPlanNotFound is returned when a plan is not found or outside the caller's scope.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserInactive is returned when a deactivated user attempts to authenticate.
	ErrUserInactive = errors.New("user account is deactivated")
	// ErrUserAlreadyExists is returned when registering a username or email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrMachineCodeTaken is returned when a machine code or name collides with an existing one.
	ErrMachineCodeTaken = errors.New("machine code already in use")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrForbidden is returned when the caller lacks the role or ownership for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrTraineeRequired is returned when a plan write does not resolve to a trainee.
	ErrTraineeRequired = errors.New("a trainee must be selected for the plan")
	// ErrNotTrainee is returned when a plan targets a user whose role is not trainee.
	ErrNotTrainee = errors.New("plan owner must have the trainee role")
	// ErrTraineeAssignedElsewhere is returned when a trainer writes a plan for a
	// trainee already linked to a different trainer.
	ErrTraineeAssignedElsewhere = errors.New("trainee is assigned to another trainer")
	// ErrInvalidDaysOfWeek is returned when days_of_week contains values outside 0..6.
	ErrInvalidDaysOfWeek = errors.New("days_of_week values must be integers within 0..6")
	// ErrInvalidRole is returned when a role string is not admin, trainer or trainee.
	ErrInvalidRole = errors.New("invalid role")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMachineNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MACHINE_NOT_FOUND")
	case errors.Is(err, ErrPlanNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PLAN_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_INACTIVE")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrMachineCodeTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "MACHINE_CODE_TAKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrTraineeAssignedElsewhere):
		return NewHTTPError(http.StatusForbidden, err.Error(), "TRAINEE_ASSIGNED_ELSEWHERE")
	case errors.Is(err, ErrTraineeRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TRAINEE_REQUIRED")
	case errors.Is(err, ErrNotTrainee):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_TRAINEE")
	case errors.Is(err, ErrInvalidDaysOfWeek):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DAYS_OF_WEEK")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
