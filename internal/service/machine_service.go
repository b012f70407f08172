package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gymapi/internal/errors"
	"gymapi/internal/model"
	"gymapi/internal/repository"
)

// MachineInput carries a machine create request.
type MachineInput struct {
	Code        string
	Name        string
	Description string
	IsActive    *bool
}

// MachineUpdate carries a partial machine update; nil fields stay untouched.
type MachineUpdate struct {
	Code        *string
	Name        *string
	Description *string
	IsActive    *bool
}

// MachineService exposes machine CRUD for authenticated users.
type MachineService interface {
	CreateMachine(ctx context.Context, input MachineInput) (*model.Machine, error)
	GetMachine(ctx context.Context, id uint) (*model.Machine, error)
	ListMachines(ctx context.Context, f repository.MachineFilter) ([]model.Machine, int64, error)
	UpdateMachine(ctx context.Context, id uint, input MachineUpdate) (*model.Machine, error)
	DeleteMachine(ctx context.Context, id uint) error
}

type machineService struct {
	repo repository.MachineRepository
}

// NewMachineService creates a new machine service.
func NewMachineService(repo repository.MachineRepository) MachineService {
	return &machineService{repo: repo}
}

// CreateMachine persists a machine. When no code is supplied one is generated
// from the record id in the M0001 format the floor stickers use.
func (s *machineService) CreateMachine(ctx context.Context, input MachineInput) (*model.Machine, error) {
	if input.Code != "" {
		if err := s.ensureCodeFree(ctx, input.Code, 0); err != nil {
			return nil, err
		}
	}

	machine := &model.Machine{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		machine.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, machine); err != nil {
		return nil, fmt.Errorf("create machine: %w", err)
	}

	if machine.Code == "" {
		machine.Code = fmt.Sprintf("M%04d", machine.ID)
		if err := s.repo.Update(ctx, machine); err != nil {
			return nil, fmt.Errorf("assign machine code: %w", err)
		}
	}
	return machine, nil
}

func (s *machineService) ensureCodeFree(ctx context.Context, code string, selfID uint) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("check machine code: %w", err)
	}
	if existing.ID != selfID {
		return errors.ErrMachineCodeTaken
	}
	return nil
}

func (s *machineService) GetMachine(ctx context.Context, id uint) (*model.Machine, error) {
	machine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMachineNotFound
		}
		return nil, err
	}
	return machine, nil
}

func (s *machineService) ListMachines(ctx context.Context, f repository.MachineFilter) ([]model.Machine, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *machineService) UpdateMachine(ctx context.Context, id uint, input MachineUpdate) (*model.Machine, error) {
	machine, err := s.GetMachine(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil && *input.Code != machine.Code {
		if err := s.ensureCodeFree(ctx, *input.Code, machine.ID); err != nil {
			return nil, err
		}
		machine.Code = *input.Code
	}
	if input.Name != nil {
		machine.Name = *input.Name
	}
	if input.Description != nil {
		machine.Description = *input.Description
	}
	if input.IsActive != nil {
		machine.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, machine); err != nil {
		return nil, fmt.Errorf("update machine: %w", err)
	}
	return machine, nil
}

func (s *machineService) DeleteMachine(ctx context.Context, id uint) error {
	if _, err := s.GetMachine(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
