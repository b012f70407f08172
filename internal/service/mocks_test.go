package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gymapi/internal/authz"
	"gymapi/internal/model"
	"gymapi/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, caller authz.Caller, f repository.UserFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, caller, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) TraineeChoices(ctx context.Context, caller authz.Caller) ([]model.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) SetTrainer(ctx context.Context, userID uint, trainerID *uint) error {
	args := m.Called(ctx, userID, trainerID)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, userID uint, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of repository.PlanRepository.
// WithTransaction runs the callback against the mocks themselves so tests can
// assert on the writes performed inside the transaction.
type MockPlanRepository struct {
	mock.Mock
	users *MockUserRepository
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *model.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, plan *model.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context, caller authz.Caller, f repository.PlanFilter) ([]model.Plan, int64, error) {
	args := m.Called(ctx, caller, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Plan), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlanRepository) HasActivePlan(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepository) ReplaceMachines(ctx context.Context, plan *model.Plan, machines []model.Machine) error {
	args := m.Called(ctx, plan, machines)
	return args.Error(0)
}

func (m *MockPlanRepository) WithTransaction(ctx context.Context, fn func(planRepo repository.PlanRepository, userRepo repository.UserRepository) error) error {
	return fn(m, m.users)
}

// MockMachineRepository is a mock implementation of repository.MachineRepository.
type MockMachineRepository struct {
	mock.Mock
}

func (m *MockMachineRepository) Create(ctx context.Context, machine *model.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepository) Update(ctx context.Context, machine *model.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}

func (m *MockMachineRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMachineRepository) FindByID(ctx context.Context, id uint) (*model.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Machine), args.Error(1)
}

func (m *MockMachineRepository) FindByCode(ctx context.Context, code string) (*model.Machine, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Machine), args.Error(1)
}

func (m *MockMachineRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Machine, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Machine), args.Error(1)
}

func (m *MockMachineRepository) List(ctx context.Context, f repository.MachineFilter) ([]model.Machine, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Machine), args.Get(1).(int64), args.Error(2)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, role authz.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, authz.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Get(2).(authz.Role), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
