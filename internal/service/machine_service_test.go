package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gymapi/internal/errors"
	"gymapi/internal/model"
)

func TestMachineService_CreateMachine(t *testing.T) {
	t.Run("generates code when empty", func(t *testing.T) {
		mockRepo := new(MockMachineRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Machine")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Machine).ID = 12
		}).Return(nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Machine) bool {
			return m.Code == "M0012"
		})).Return(nil)

		service := NewMachineService(mockRepo)
		machine, err := service.CreateMachine(context.Background(), MachineInput{Name: "Treadmill"})
		assert.NoError(t, err)
		assert.Equal(t, "M0012", machine.Code)
		assert.True(t, machine.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeps supplied code", func(t *testing.T) {
		mockRepo := new(MockMachineRepository)
		mockRepo.On("FindByCode", mock.Anything, "ROW-1").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Machine) bool {
			return m.Code == "ROW-1"
		})).Return(nil)

		service := NewMachineService(mockRepo)
		machine, err := service.CreateMachine(context.Background(), MachineInput{Code: "ROW-1", Name: "Rowing Machine"})
		assert.NoError(t, err)
		assert.Equal(t, "ROW-1", machine.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		mockRepo := new(MockMachineRepository)
		mockRepo.On("FindByCode", mock.Anything, "M0001").Return(&model.Machine{ID: 1, Code: "M0001"}, nil)

		service := NewMachineService(mockRepo)
		_, err := service.CreateMachine(context.Background(), MachineInput{Code: "M0001", Name: "Treadmill"})
		assert.ErrorIs(t, err, errors.ErrMachineCodeTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestMachineService_UpdateMachine(t *testing.T) {
	t.Run("changes code after uniqueness check", func(t *testing.T) {
		mockRepo := new(MockMachineRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Machine{ID: 3, Code: "M0003", Name: "Bench"}, nil)
		mockRepo.On("FindByCode", mock.Anything, "BENCH-1").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Machine) bool {
			return m.Code == "BENCH-1"
		})).Return(nil)

		service := NewMachineService(mockRepo)
		code := "BENCH-1"
		machine, err := service.UpdateMachine(context.Background(), 3, MachineUpdate{Code: &code})
		assert.NoError(t, err)
		assert.Equal(t, "BENCH-1", machine.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("code taken by another machine", func(t *testing.T) {
		mockRepo := new(MockMachineRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Machine{ID: 3, Code: "M0003"}, nil)
		mockRepo.On("FindByCode", mock.Anything, "M0001").Return(&model.Machine{ID: 1, Code: "M0001"}, nil)

		service := NewMachineService(mockRepo)
		code := "M0001"
		_, err := service.UpdateMachine(context.Background(), 3, MachineUpdate{Code: &code})
		assert.ErrorIs(t, err, errors.ErrMachineCodeTaken)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown machine", func(t *testing.T) {
		mockRepo := new(MockMachineRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewMachineService(mockRepo)
		name := "Ghost"
		_, err := service.UpdateMachine(context.Background(), 99, MachineUpdate{Name: &name})
		assert.ErrorIs(t, err, errors.ErrMachineNotFound)
	})
}

func TestMachineService_DeleteMachine(t *testing.T) {
	mockRepo := new(MockMachineRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Machine{ID: 3}, nil)
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

	service := NewMachineService(mockRepo)
	assert.NoError(t, service.DeleteMachine(context.Background(), 3))
	mockRepo.AssertExpectations(t)
}
