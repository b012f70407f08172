package repository

import (
	"context"

	"gorm.io/gorm"

	"gymapi/internal/model"
)

// MachineFilter carries the query parameters of the machines list endpoint.
type MachineFilter struct {
	ID       *uint
	Search   string
	Ordering string
	Page     int
}

// MachineRepository defines machine persistence operations.
type MachineRepository interface {
	Create(ctx context.Context, machine *model.Machine) error
	Update(ctx context.Context, machine *model.Machine) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Machine, error)
	FindByCode(ctx context.Context, code string) (*model.Machine, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Machine, error)
	List(ctx context.Context, f MachineFilter) ([]model.Machine, int64, error)
}

type machineRepository struct {
	db *gorm.DB
}

// NewMachineRepository builds a GORM-backed repository.
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

func (r *machineRepository) Create(ctx context.Context, machine *model.Machine) error {
	return r.db.WithContext(ctx).Create(machine).Error
}

func (r *machineRepository) Update(ctx context.Context, machine *model.Machine) error {
	return r.db.WithContext(ctx).Save(machine).Error
}

func (r *machineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Machine{}, id).Error
}

func (r *machineRepository) FindByID(ctx context.Context, id uint) (*model.Machine, error) {
	var machine model.Machine
	if err := r.db.WithContext(ctx).First(&machine, id).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepository) FindByCode(ctx context.Context, code string) (*model.Machine, error) {
	var machine model.Machine
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&machine).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Machine, error) {
	machines := make([]model.Machine, 0, len(ids))
	if len(ids) == 0 {
		return machines, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *machineRepository) List(ctx context.Context, f MachineFilter) ([]model.Machine, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Machine{})

	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	db = applyOrdering(db, f.Ordering, "id", map[string]string{
		"id":   "id",
		"name": "name",
		"code": "code",
	})

	var machines []model.Machine
	if err := applyPage(db, f.Page).Find(&machines).Error; err != nil {
		return nil, 0, err
	}
	return machines, count, nil
}
