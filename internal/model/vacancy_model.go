package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Vacancy struct {
	ID               uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title            string                      `gorm:"type:varchar(255);index" json:"title"`
	Description      string                      `gorm:"type:text" json:"description"`
	Skills           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"skills"`
	MinorSkills      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"minor_skills"`
	Responsibilities datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"responsibilities"`
	Domain           string                      `gorm:"type:varchar(255)" json:"domain"`
	ExperienceLevel  string                      `gorm:"type:varchar(64)" json:"experience_level"`
	EmploymentType   string                      `gorm:"type:varchar(64)" json:"employment_type"`
	Company          string                      `gorm:"type:varchar(255)" json:"company"`
	CompanyInfo      string                      `gorm:"type:text" json:"company_info"`
	Location         string                      `gorm:"type:varchar(255)" json:"location"`
	Salary           string                      `gorm:"type:varchar(128)" json:"salary"`
	Status           string                      `gorm:"type:varchar(64);default:'open'" json:"status"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (v *Vacancy) TableName() string {
	return "vacancies"
}
