package repository

import (
	"context"

	"gorm.io/gorm"

	"gymapi/internal/authz"
	"gymapi/internal/model"
)

// UserFilter carries the query parameters of the users list endpoint.
// Filters narrow, but never widen, the role-determined visible set.
type UserFilter struct {
	Role      *authz.Role
	IsActive  *bool
	TrainerID *uint
	Search    string
	Ordering  string
	Page      int
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, caller authz.Caller, f UserFilter) ([]model.User, int64, error)
	TraineeChoices(ctx context.Context, caller authz.Caller) ([]model.User, error)
	SetTrainer(ctx context.Context, userID uint, trainerID *uint) error
	SetActive(ctx context.Context, userID uint, active bool) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Trainer").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// scoped returns the visible set of users for the caller. Scoping is applied
// before any filter, search or ordering parameter.
func (r *userRepository) scoped(ctx context.Context, caller authz.Caller) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.User{})
	switch caller.Role {
	case authz.RoleAdmin:
		return db
	case authz.RoleTrainer:
		return db.Where("id = ? OR trainer_id = ?", caller.ID, caller.ID)
	case authz.RoleTrainee:
		return db.Where("id = ?", caller.ID)
	}
	// Unknown roles see nothing.
	return db.Where("1 = 0")
}

func (r *userRepository) List(ctx context.Context, caller authz.Caller, f UserFilter) ([]model.User, int64, error) {
	db := r.scoped(ctx, caller)

	if f.Role != nil {
		db = db.Where("role = ?", *f.Role)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.TrainerID != nil {
		db = db.Where("trainer_id = ?", *f.TrainerID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where(
			"username LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	db = applyOrdering(db, f.Ordering, "id", map[string]string{
		"id":         "id",
		"username":   "username",
		"first_name": "first_name",
		"last_name":  "last_name",
	})

	var users []model.User
	if err := applyPage(db, f.Page).Preload("Trainer").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// TraineeChoices returns the trainees a caller may attach a plan to.
// Admin: every trainee. Trainer: own trainees plus unassigned trainees with
// no active plan. Anyone else: empty.
func (r *userRepository) TraineeChoices(ctx context.Context, caller authz.Caller) ([]model.User, error) {
	db := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", authz.RoleTrainee)

	switch caller.Role {
	case authz.RoleAdmin:
		// all trainees
	case authz.RoleTrainer:
		activePlanOwners := r.db.WithContext(ctx).Model(&model.Plan{}).
			Select("DISTINCT user_id").
			Where("is_active = ?", true)
		db = db.Where(
			"trainer_id = ? OR (trainer_id IS NULL AND id NOT IN (?))",
			caller.ID, activePlanOwners,
		)
	default:
		return []model.User{}, nil
	}

	var trainees []model.User
	if err := db.Order("username").Find(&trainees).Error; err != nil {
		return nil, err
	}
	return trainees, nil
}

func (r *userRepository) SetTrainer(ctx context.Context, userID uint, trainerID *uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("trainer_id", trainerID).Error
}

func (r *userRepository) SetActive(ctx context.Context, userID uint, active bool) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_active", active).Error
}
