package model

import "time"

// Plan is a training program owned by exactly one trainee. Every create,
// update or delete of a plan triggers recomputation of the owning trainee's
// trainer link.
type Plan struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user" gorm:"not null;index"`
	Title           string     `json:"title" gorm:"size:120;not null"`
	Description     string     `json:"description" gorm:"type:text"`
	DaysPerWeek     int        `json:"days_per_week" gorm:"default:3"`
	Sets            int        `json:"sets" gorm:"default:3"`
	Reps            int        `json:"reps" gorm:"default:10"`
	DurationMinutes int        `json:"duration_minutes" gorm:"default:45"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	DaysOfWeek      DaysOfWeek `json:"days_of_week" gorm:"type:json"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	User     *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Machines []Machine `json:"machines" gorm:"many2many:plan_machines"`
}
