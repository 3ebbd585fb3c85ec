package model

import (
	"time"

	"github.com/google/uuid"
)

// Interview lifecycle states. The state only ever moves forward:
// initialized -> in_progress -> done.
const (
	InterviewStateInitialized = "initialized"
	InterviewStateInProgress  = "in_progress"
	InterviewStateDone        = "done"
)

const (
	MessageTypeSystem    = "system"
	MessageTypeUser      = "user"
	MessageTypeAssistant = "assistant"
)

type Interview struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID      uuid.UUID  `gorm:"type:uuid;index" json:"candidate_id"`
	VacancyID        *uuid.UUID `gorm:"type:uuid" json:"vacancy_id"`
	Transcript       string     `gorm:"type:text" json:"transcript"`
	RecordingURL     string     `gorm:"type:varchar(1024)" json:"recording_url"`
	State            string     `gorm:"type:varchar(32);default:'initialized'" json:"state"`
	Feedback         *string    `gorm:"type:text" json:"feedback"`
	FeedbackPositive *bool      `json:"feedback_positive"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"-"`
	Vacancy   *Vacancy   `gorm:"foreignKey:VacancyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

// InterviewMessage is one line of an interview transcript. Messages are
// append-only; within an interview, indices are contiguous from 0.
type InterviewMessage struct {
	InterviewID uuid.UUID `gorm:"type:uuid;primaryKey" json:"interview_id"`
	Index       int       `gorm:"primaryKey" json:"index"`
	Text        string    `gorm:"type:text" json:"text"`
	Type        string    `gorm:"type:varchar(16)" json:"type"`
	CreatedAt   time.Time `json:"created_at"`

	Interview *Interview `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *InterviewMessage) TableName() string {
	return "interview_messages"
}
