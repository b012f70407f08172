package repository

import (
	"context"

	"gorm.io/gorm"

	"gymapi/internal/authz"
	"gymapi/internal/model"
)

// PlanFilter carries the query parameters of the plans list endpoint.
type PlanFilter struct {
	UserID   *uint
	IsActive *bool
	Search   string
	Ordering string
	Page     int
}

// PlanRepository defines plan persistence operations.
//
// WithTransaction scopes a plan mutation and the trainee's trainer-link
// read-modify-write to a single transaction so concurrent plan writes for the
// same trainee cannot observe stale link state.
type PlanRepository interface {
	Create(ctx context.Context, plan *model.Plan) error
	Update(ctx context.Context, plan *model.Plan) error
	Delete(ctx context.Context, plan *model.Plan) error
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	List(ctx context.Context, caller authz.Caller, f PlanFilter) ([]model.Plan, int64, error)
	HasActivePlan(ctx context.Context, userID uint) (bool, error)
	ReplaceMachines(ctx context.Context, plan *model.Plan, machines []model.Machine) error
	WithTransaction(ctx context.Context, fn func(planRepo PlanRepository, userRepo UserRepository) error) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository builds a GORM-backed repository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) Update(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Omit("Machines").Save(plan).Error
}

func (r *planRepository) Delete(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Select("Machines").Delete(plan).Error
}

func (r *planRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Machines").
		First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// scoped returns the visible set of plans for the caller, applied before any
// filter, search or ordering parameter.
func (r *planRepository) scoped(ctx context.Context, caller authz.Caller) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Plan{})
	switch caller.Role {
	case authz.RoleAdmin:
		return db
	case authz.RoleTrainer:
		return db.Joins("JOIN users ON users.id = plans.user_id").
			Where("users.trainer_id = ?", caller.ID)
	case authz.RoleTrainee:
		return db.Where("plans.user_id = ?", caller.ID)
	}
	return db.Where("1 = 0")
}

func (r *planRepository) List(ctx context.Context, caller authz.Caller, f PlanFilter) ([]model.Plan, int64, error) {
	db := r.scoped(ctx, caller)

	if f.UserID != nil {
		db = db.Where("plans.user_id = ?", *f.UserID)
	}
	if f.IsActive != nil {
		db = db.Where("plans.is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		db = db.Where("plans.title LIKE ?", "%"+f.Search+"%")
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	db = applyOrdering(db, f.Ordering, "plans.id", map[string]string{
		"id":            "plans.id",
		"title":         "plans.title",
		"days_per_week": "plans.days_per_week",
	})

	var plans []model.Plan
	if err := applyPage(db, f.Page).
		Preload("User").
		Preload("Machines").
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, count, nil
}

func (r *planRepository) HasActivePlan(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Plan{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *planRepository) ReplaceMachines(ctx context.Context, plan *model.Plan, machines []model.Machine) error {
	return r.db.WithContext(ctx).Model(plan).Association("Machines").Replace(machines)
}

// WithTransaction executes fn with plan and user repositories bound to one
// database transaction.
func (r *planRepository) WithTransaction(ctx context.Context, fn func(planRepo PlanRepository, userRepo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&planRepository{db: tx}, &userRepository{db: tx})
	})
}
