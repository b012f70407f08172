package model

import (
	"time"

	"gorm.io/gorm"

	"gymapi/internal/authz"
)

// User represents a gym account: an admin, a trainer, or a trainee.
//
// TrainerID is only meaningful for trainees and is maintained by the plan
// lifecycle: it is set when a trainer writes an active plan for an unassigned
// trainee and cleared when the trainee no longer holds any active plan.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string     `json:"email" gorm:"size:255;index"`
	FirstName    string     `json:"first_name" gorm:"size:150"`
	LastName     string     `json:"last_name" gorm:"size:150"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         authz.Role `json:"role" gorm:"size:20;not null;index"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	TrainerID    *uint      `json:"trainer" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Trainer *User  `json:"-" gorm:"foreignKey:TrainerID;constraint:OnDelete:SET NULL"`
	Plans   []Plan `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Read-only convenience for API consumers, filled from the preloaded Trainer.
	TrainerUsername string `json:"trainer_username,omitempty" gorm:"-"`
}

// AfterFind populates TrainerUsername when the trainer relation was preloaded.
func (u *User) AfterFind(tx *gorm.DB) error {
	if u.Trainer != nil {
		u.TrainerUsername = u.Trainer.Username
	}
	return nil
}
