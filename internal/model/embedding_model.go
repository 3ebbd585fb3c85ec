package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimension is the vector size produced by the embedding model.
const EmbeddingDimension = 1024

type CandidateEmbedding struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"candidate_id"`
	Embedding   pgvector.Vector `gorm:"type:vector(1024)" json:"embedding"`
	TextContent string          `gorm:"type:text" json:"text_content"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *CandidateEmbedding) TableName() string {
	return "candidate_embeddings"
}

type VacancyEmbedding struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VacancyID   uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"vacancy_id"`
	Embedding   pgvector.Vector `gorm:"type:vector(1024)" json:"embedding"`
	TextContent string          `gorm:"type:text" json:"text_content"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Vacancy *Vacancy `gorm:"foreignKey:VacancyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *VacancyEmbedding) TableName() string {
	return "vacancy_embeddings"
}
