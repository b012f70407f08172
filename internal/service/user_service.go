package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymapi/internal/authz"
	"gymapi/internal/cache"
	"gymapi/internal/errors"
	"gymapi/internal/model"
	"gymapi/internal/repository"
)

const userCacheTTL = 5 * time.Minute

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// UserUpdate carries a partial user update; nil fields are left untouched.
// Role, active flag and trainer link may only be changed by admins.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	Role      *authz.Role
	IsActive  *bool
	TrainerID *uint
	// ClearTrainer unsets the trainer link when true (admin only).
	ClearTrainer bool
}

// UserService exposes role-scoped user operations.
type UserService interface {
	GetUser(ctx context.Context, caller authz.Caller, id uint) (*model.User, error)
	GetProfile(ctx context.Context, caller authz.Caller) (*model.User, error)
	ListUsers(ctx context.Context, caller authz.Caller, f repository.UserFilter) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, caller authz.Caller, id uint, input UserUpdate) (*model.User, error)
	DeactivateUser(ctx context.Context, caller authz.Caller, id uint) (*model.User, error)
	ActivateUser(ctx context.Context, caller authz.Caller, id uint) (*model.User, error)
	DeleteUser(ctx context.Context, caller authz.Caller, id uint) error
	TraineeChoices(ctx context.Context, caller authz.Caller) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// GetUser fetches a user the caller is allowed to see. Out-of-scope records
// report not-found, indistinguishable from true absence.
func (s *userService) GetUser(ctx context.Context, caller authz.Caller, id uint) (*model.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessUser(caller, user.ID, user.TrainerID) {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// GetProfile returns the caller's own record.
func (s *userService) GetProfile(ctx context.Context, caller authz.Caller) (*model.User, error) {
	return s.find(ctx, caller.ID)
}

func (s *userService) find(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, caller authz.Caller, f repository.UserFilter) ([]model.User, int64, error) {
	return s.repo.List(ctx, caller, f)
}

// UpdateUser applies a partial update. Non-admin callers may only touch their
// reachable records' profile fields; role, is_active and the trainer link are
// admin-only.
func (s *userService) UpdateUser(ctx context.Context, caller authz.Caller, id uint, input UserUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if !authz.CanAccessUser(caller, user.ID, user.TrainerID) {
		return nil, errors.ErrUserNotFound
	}

	adminOnly := input.Role != nil || input.IsActive != nil || input.TrainerID != nil || input.ClearTrainer
	if adminOnly && !caller.IsAdmin() {
		return nil, errors.ErrForbidden
	}

	if input.Username != nil && *input.Username != user.Username {
		existing, err := s.repo.FindByUsername(ctx, *input.Username)
		if err == nil && existing != nil && existing.ID != user.ID {
			return nil, errors.ErrUserAlreadyExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check username: %w", err)
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, errors.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.ClearTrainer {
		user.TrainerID = nil
		user.Trainer = nil
	} else if input.TrainerID != nil {
		trainer, err := s.repo.FindByID(ctx, *input.TrainerID)
		if err != nil || trainer.Role != authz.RoleTrainer {
			return nil, errors.ErrInvalidRole
		}
		user.TrainerID = input.TrainerID
		user.Trainer = nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(user.ID))
	return s.find(ctx, user.ID)
}

// DeactivateUser soft-deactivates an account (admin only).
func (s *userService) DeactivateUser(ctx context.Context, caller authz.Caller, id uint) (*model.User, error) {
	return s.setActive(ctx, caller, id, false)
}

// ActivateUser re-activates an account (admin only).
func (s *userService) ActivateUser(ctx context.Context, caller authz.Caller, id uint) (*model.User, error) {
	return s.setActive(ctx, caller, id, true)
}

func (s *userService) setActive(ctx context.Context, caller authz.Caller, id uint, active bool) (*model.User, error) {
	if !caller.IsAdmin() {
		return nil, errors.ErrForbidden
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("set active: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return s.find(ctx, id)
}

// DeleteUser soft-deactivates the account: accounts are never hard-deleted
// through the public API.
func (s *userService) DeleteUser(ctx context.Context, caller authz.Caller, id uint) error {
	_, err := s.setActive(ctx, caller, id, false)
	return err
}

func (s *userService) TraineeChoices(ctx context.Context, caller authz.Caller) ([]model.User, error) {
	return s.repo.TraineeChoices(ctx, caller)
}
