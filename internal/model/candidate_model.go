package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ExperienceEntry is one job in the candidate's work history.
type ExperienceEntry struct {
	Company   string `json:"company"`
	Position  string `json:"position"`
	Years     int    `json:"years"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type EducationEntry struct {
	Organization string `json:"organization"`
	Speciality   string `json:"speciality"`
	Type         string `json:"type"`
}

type Candidate struct {
	ID             uuid.UUID                            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string                               `gorm:"type:varchar(255)" json:"name"`
	Email          *string                              `gorm:"type:varchar(255);index" json:"email"`
	Position       string                               `gorm:"type:varchar(255)" json:"position"`
	Experience     datatypes.JSONSlice[ExperienceEntry] `gorm:"type:jsonb" json:"experience"`
	Skills         datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"skills"`
	Tech           datatypes.JSONSlice[string]          `gorm:"type:jsonb" json:"tech"`
	Education      datatypes.JSONSlice[EducationEntry]  `gorm:"type:jsonb" json:"education"`
	Geo            string                               `gorm:"type:varchar(255)" json:"geo"`
	EmploymentType string                               `gorm:"type:varchar(64)" json:"employment_type"`
	Salary         string                               `gorm:"type:varchar(128)" json:"salary"`
	ResumeURL      string                               `gorm:"type:varchar(1024)" json:"resume_url"`
	Status         string                               `gorm:"type:varchar(64);default:'ждем ответа'" json:"status"`
	CreatedAt      time.Time                            `json:"created_at"`
	UpdatedAt      time.Time                            `json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}

// TotalExperienceYears sums the years field across all experience entries.
func (c *Candidate) TotalExperienceYears() int {
	total := 0
	for _, exp := range c.Experience {
		total += exp.Years
	}
	return total
}
