package model

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form recruiter annotation on a vacancy.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VacancyID uuid.UUID `gorm:"type:uuid;index" json:"vacancy_id"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Vacancy *Vacancy `gorm:"foreignKey:VacancyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (n *Note) TableName() string {
	return "notes"
}
