package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gymapi/internal/authz"
	"gymapi/internal/cache"
	"gymapi/internal/errors"
	"gymapi/internal/model"
	"gymapi/internal/repository"
)

// PlanInput carries a plan create request. Optional fields default: an absent
// user resolves to the caller for trainees, days_of_week defaults to empty,
// is_active defaults to true.
type PlanInput struct {
	UserID          *uint
	Title           string
	Description     string
	DaysPerWeek     *int
	Sets            *int
	Reps            *int
	DurationMinutes *int
	IsActive        *bool
	DaysOfWeek      *[]int
	MachineIDs      *[]uint
}

// PlanUpdate carries a partial plan update; nil fields are left untouched.
type PlanUpdate struct {
	Title           *string
	Description     *string
	DaysPerWeek     *int
	Sets            *int
	Reps            *int
	DurationMinutes *int
	IsActive        *bool
	DaysOfWeek      *[]int
	MachineIDs      *[]uint
}

// PlanService owns the plan lifecycle and the trainer-link rules that hang off
// it: trainer auto-assignment on active plan writes, and clearing a trainee's
// trainer once no active plan remains. Each write is a single transaction
// covering the plan mutation and the trainer-link read-modify-write.
type PlanService interface {
	CreatePlan(ctx context.Context, caller authz.Caller, input PlanInput) (*model.Plan, error)
	GetPlan(ctx context.Context, caller authz.Caller, id uint) (*model.Plan, error)
	ListPlans(ctx context.Context, caller authz.Caller, f repository.PlanFilter) ([]model.Plan, int64, error)
	UpdatePlan(ctx context.Context, caller authz.Caller, id uint, input PlanUpdate) (*model.Plan, error)
	DeletePlan(ctx context.Context, caller authz.Caller, id uint) error
}

type planService struct {
	planRepo    repository.PlanRepository
	userRepo    repository.UserRepository
	machineRepo repository.MachineRepository
	cache       *cache.Client
}

// NewPlanService creates a new plan service.
func NewPlanService(
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	machineRepo repository.MachineRepository,
	cache *cache.Client,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		userRepo:    userRepo,
		machineRepo: machineRepo,
		cache:       cache,
	}
}

// resolveTrainee maps the supplied owner id to the trainee the plan belongs
// to, enforcing who may write plans for whom. All checks run before any
// mutation.
func (s *planService) resolveTrainee(ctx context.Context, caller authz.Caller, userID *uint) (*model.User, error) {
	var traineeID uint
	switch caller.Role {
	case authz.RoleTrainee:
		if userID != nil && *userID != caller.ID {
			return nil, errors.ErrForbidden
		}
		traineeID = caller.ID
	case authz.RoleTrainer, authz.RoleAdmin:
		if userID == nil {
			return nil, errors.ErrTraineeRequired
		}
		traineeID = *userID
	default:
		return nil, errors.ErrForbidden
	}

	trainee, err := s.userRepo.FindByID(ctx, traineeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTraineeRequired
		}
		return nil, fmt.Errorf("find trainee: %w", err)
	}
	if trainee.Role != authz.RoleTrainee {
		return nil, errors.ErrNotTrainee
	}
	if !authz.CanWritePlanFor(caller, trainee.ID, trainee.TrainerID) {
		return nil, errors.ErrTraineeAssignedElsewhere
	}
	return trainee, nil
}

// resolveMachines loads the machines referenced by a plan write.
func (s *planService) resolveMachines(ctx context.Context, ids []uint) ([]model.Machine, error) {
	machines, err := s.machineRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find machines: %w", err)
	}
	if len(machines) != len(dedupeIDs(ids)) {
		return nil, errors.ErrMachineNotFound
	}
	return machines, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// CreatePlan validates, persists and reconciles the trainer link in one
// transaction.
func (s *planService) CreatePlan(ctx context.Context, caller authz.Caller, input PlanInput) (*model.Plan, error) {
	trainee, err := s.resolveTrainee(ctx, caller, input.UserID)
	if err != nil {
		return nil, err
	}

	days := model.DaysOfWeek{}
	if input.DaysOfWeek != nil {
		if days, err = model.NormalizeDays(*input.DaysOfWeek); err != nil {
			return nil, err
		}
	}

	var machines []model.Machine
	if input.MachineIDs != nil {
		if machines, err = s.resolveMachines(ctx, *input.MachineIDs); err != nil {
			return nil, err
		}
	}

	plan := &model.Plan{
		UserID:          trainee.ID,
		Title:           input.Title,
		Description:     input.Description,
		DaysPerWeek:     3,
		Sets:            3,
		Reps:            10,
		DurationMinutes: 45,
		IsActive:        true,
		DaysOfWeek:      days,
		Machines:        machines,
	}
	if input.DaysPerWeek != nil {
		plan.DaysPerWeek = *input.DaysPerWeek
	}
	if input.Sets != nil {
		plan.Sets = *input.Sets
	}
	if input.Reps != nil {
		plan.Reps = *input.Reps
	}
	if input.DurationMinutes != nil {
		plan.DurationMinutes = *input.DurationMinutes
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	err = s.planRepo.WithTransaction(ctx, func(planRepo repository.PlanRepository, userRepo repository.UserRepository) error {
		// Re-read the trainee inside the transaction: a concurrent plan write
		// may have changed the trainer link since the pre-check.
		current, err := userRepo.FindByID(ctx, trainee.ID)
		if err != nil {
			return fmt.Errorf("reload trainee: %w", err)
		}
		if !authz.CanWritePlanFor(caller, current.ID, current.TrainerID) {
			return errors.ErrTraineeAssignedElsewhere
		}

		if err := planRepo.Create(ctx, plan); err != nil {
			return fmt.Errorf("create plan: %w", err)
		}
		if err := s.reconcileTrainerLink(ctx, planRepo, userRepo, caller, plan, current); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUser(ctx, trainee.ID)
	return s.planRepo.FindByID(ctx, plan.ID)
}

// GetPlan returns a plan if it lies within the caller's visible scope;
// otherwise it reports not-found, indistinguishable from true absence.
func (s *planService) GetPlan(ctx context.Context, caller authz.Caller, id uint) (*model.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPlanNotFound
		}
		return nil, err
	}
	if !s.canSeePlan(caller, plan) {
		return nil, errors.ErrPlanNotFound
	}
	return plan, nil
}

func (s *planService) canSeePlan(caller authz.Caller, plan *model.Plan) bool {
	switch caller.Role {
	case authz.RoleAdmin:
		return true
	case authz.RoleTrainer:
		return plan.User != nil && plan.User.TrainerID != nil && *plan.User.TrainerID == caller.ID
	case authz.RoleTrainee:
		return plan.UserID == caller.ID
	}
	return false
}

func (s *planService) ListPlans(ctx context.Context, caller authz.Caller, f repository.PlanFilter) ([]model.Plan, int64, error) {
	return s.planRepo.List(ctx, caller, f)
}

// UpdatePlan applies a partial update and reconciles the trainer link.
// The owning trainee cannot be changed through update.
func (s *planService) UpdatePlan(ctx context.Context, caller authz.Caller, id uint, input PlanUpdate) (*model.Plan, error) {
	plan, err := s.GetPlan(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	trainee := plan.User
	if trainee == nil {
		return nil, errors.ErrTraineeRequired
	}
	if !authz.CanWritePlanFor(caller, trainee.ID, trainee.TrainerID) {
		return nil, errors.ErrTraineeAssignedElsewhere
	}

	if input.Title != nil {
		plan.Title = *input.Title
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.DaysPerWeek != nil {
		plan.DaysPerWeek = *input.DaysPerWeek
	}
	if input.Sets != nil {
		plan.Sets = *input.Sets
	}
	if input.Reps != nil {
		plan.Reps = *input.Reps
	}
	if input.DurationMinutes != nil {
		plan.DurationMinutes = *input.DurationMinutes
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}
	if input.DaysOfWeek != nil {
		days, err := model.NormalizeDays(*input.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		plan.DaysOfWeek = days
	}

	var machines []model.Machine
	if input.MachineIDs != nil {
		if machines, err = s.resolveMachines(ctx, *input.MachineIDs); err != nil {
			return nil, err
		}
	}

	err = s.planRepo.WithTransaction(ctx, func(planRepo repository.PlanRepository, userRepo repository.UserRepository) error {
		current, err := userRepo.FindByID(ctx, trainee.ID)
		if err != nil {
			return fmt.Errorf("reload trainee: %w", err)
		}
		if !authz.CanWritePlanFor(caller, current.ID, current.TrainerID) {
			return errors.ErrTraineeAssignedElsewhere
		}

		if err := planRepo.Update(ctx, plan); err != nil {
			return fmt.Errorf("update plan: %w", err)
		}
		if input.MachineIDs != nil {
			if err := planRepo.ReplaceMachines(ctx, plan, machines); err != nil {
				return fmt.Errorf("replace plan machines: %w", err)
			}
		}
		if err := s.reconcileTrainerLink(ctx, planRepo, userRepo, caller, plan, current); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateUser(ctx, trainee.ID)
	return s.planRepo.FindByID(ctx, plan.ID)
}

// DeletePlan removes a plan and recomputes the owning trainee's status.
func (s *planService) DeletePlan(ctx context.Context, caller authz.Caller, id uint) error {
	plan, err := s.GetPlan(ctx, caller, id)
	if err != nil {
		return err
	}

	err = s.planRepo.WithTransaction(ctx, func(planRepo repository.PlanRepository, userRepo repository.UserRepository) error {
		if err := planRepo.Delete(ctx, plan); err != nil {
			return fmt.Errorf("delete plan: %w", err)
		}
		return s.recomputeTraineeStatus(ctx, planRepo, userRepo, plan.UserID)
	})
	if err != nil {
		return err
	}

	s.invalidateUser(ctx, plan.UserID)
	return nil
}

// reconcileTrainerLink applies the two link rules after a plan write:
// a trainer writing an active plan claims an unassigned trainee, and a
// trainee with no remaining active plan loses their trainer.
func (s *planService) reconcileTrainerLink(
	ctx context.Context,
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	caller authz.Caller,
	plan *model.Plan,
	trainee *model.User,
) error {
	if caller.Role == authz.RoleTrainer && plan.IsActive && trainee.TrainerID == nil {
		trainerID := caller.ID
		if err := userRepo.SetTrainer(ctx, trainee.ID, &trainerID); err != nil {
			return fmt.Errorf("assign trainer: %w", err)
		}
	}
	return s.recomputeTraineeStatus(ctx, planRepo, userRepo, trainee.ID)
}

// recomputeTraineeStatus clears the trainer link when the trainee no longer
// owns any active plan. It never sets a trainer and is idempotent.
func (s *planService) recomputeTraineeStatus(
	ctx context.Context,
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	traineeID uint,
) error {
	hasActive, err := planRepo.HasActivePlan(ctx, traineeID)
	if err != nil {
		return fmt.Errorf("check active plans: %w", err)
	}
	if hasActive {
		return nil
	}
	if err := userRepo.SetTrainer(ctx, traineeID, nil); err != nil {
		return fmt.Errorf("clear trainer: %w", err)
	}
	return nil
}

func (s *planService) invalidateUser(ctx context.Context, userID uint) {
	_ = s.cache.Delete(ctx, userCacheKey(userID))
}
