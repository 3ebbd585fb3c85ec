package dto

import "github.com/google/uuid"

type SkillsMatchAnalysis struct {
	MatchedCoreSkills     []string `json:"matched_core_skills"`
	MatchedPercentage     int      `json:"matched_percentage"`
	MissingCriticalSkills []string `json:"missing_critical_skills"`
	BonusSkills           []string `json:"bonus_skills_candidate_has"`
	SkillsGapAssessment   string   `json:"skills_gap_assessment"`
}

type ExperienceAnalysis struct {
	RelevantExperienceYears int      `json:"relevant_experience_years"`
	DomainMatch             string   `json:"domain_match"`
	RoleProgression         string   `json:"role_progression"`
	RelevantProjects        []string `json:"relevant_projects"`
	ExperienceLevelFit      string   `json:"experience_level_fit"`
}

type ExecutiveSummary struct {
	OverallMatchScore string   `json:"overall_match_score"`
	MatchLevel        string   `json:"match_level"`
	Recommendation    string   `json:"recommendation"`
	KeyStrengths      []string `json:"key_strengths"`
	MainConcerns      []string `json:"main_concerns"`
}

type CandidateProfile struct {
	Name                string `json:"name"`
	CurrentPosition     string `json:"current_position"`
	ExperienceLevel     string `json:"experience_level"`
	Location            string `json:"location"`
	PreferredEmployment string `json:"preferred_employment"`
	Contact             string `json:"contact"`
}

type CandidateAnalysis struct {
	SkillsMatch        SkillsMatchAnalysis `json:"skills_match"`
	ExperienceAnalysis ExperienceAnalysis  `json:"experience_analysis"`
}

type DetailedAnalysis struct {
	CandidateAnalysis CandidateAnalysis `json:"candidate_analysis"`
}

type CompatibilityReport struct {
	ExecutiveSummary     ExecutiveSummary `json:"executive_summary"`
	CandidateProfile     CandidateProfile `json:"candidate_profile"`
	DetailedAnalysis     DetailedAnalysis `json:"detailed_analysis"`
	PotentialConcerns    []string         `json:"potential_concerns"`
	HiringRecommendation string           `json:"hiring_recommendation"`
	NextSteps            []string         `json:"next_steps"`
}

// VacancyMatch is one row of a top-vacancies search for a candidate.
type VacancyMatch struct {
	VacancyID       uuid.UUID `json:"vacancy_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Domain          string    `json:"domain"`
	EmploymentType  string    `json:"employment_type"`
	ExperienceLevel string    `json:"experience_level"`
	SimilarityScore float64   `json:"similarity_score"`
	OverallScore    float64   `json:"overall_score"`
	MatchLevel      string    `json:"match_level"`
}

// CandidateMatch is one row of a top-candidates search for a vacancy.
type CandidateMatch struct {
	CandidateID     uuid.UUID `json:"candidate_id"`
	Name            string    `json:"name"`
	Position        string    `json:"position"`
	Email           *string   `json:"email"`
	Geo             string    `json:"geo"`
	EmploymentType  string    `json:"employment_type"`
	SimilarityScore float64   `json:"similarity_score"`
	OverallScore    float64   `json:"overall_score"`
	MatchLevel      string    `json:"match_level"`
}
