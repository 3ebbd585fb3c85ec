package dto

import "github.com/FEgor04/moretech-hack/internal/model"

type UpdateCandidateRequest struct {
	Name           *string                 `json:"name"`
	Email          *string                 `json:"email"`
	Position       *string                 `json:"position"`
	Experience     []model.ExperienceEntry `json:"experience"`
	Skills         []string                `json:"skills"`
	Tech           []string                `json:"tech"`
	Education      []model.EducationEntry  `json:"education"`
	Geo            *string                 `json:"geo"`
	EmploymentType *string                 `json:"employment_type"`
	Salary         *string                 `json:"salary"`
	Status         *string                 `json:"status"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

type UpdateVacancyRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	Skills           []string `json:"skills"`
	MinorSkills      []string `json:"minor_skills"`
	Responsibilities []string `json:"responsibilities"`
	Domain           *string  `json:"domain"`
	ExperienceLevel  *string  `json:"experience_level"`
	EmploymentType   *string  `json:"employment_type"`
	Company          *string  `json:"company"`
	CompanyInfo      *string  `json:"company_info"`
	Location         *string  `json:"location"`
	Salary           *string  `json:"salary"`
	Status           *string  `json:"status"`
}
