package repository

import (
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// SimilarityHit is one row of a nearest-neighbour search: the owning entity
// id plus raw (uncalibrated) cosine similarity.
type SimilarityHit struct {
	ID         uuid.UUID `json:"id"`
	Similarity float64   `json:"similarity"`
}

type EmbeddingStore interface {
	FindCandidateEmbedding(candidateID uuid.UUID) (*model.CandidateEmbedding, error)
	FindVacancyEmbedding(vacancyID uuid.UUID) (*model.VacancyEmbedding, error)
	ReplaceCandidateEmbedding(e *model.CandidateEmbedding) error
	ReplaceVacancyEmbedding(e *model.VacancyEmbedding) error
	NearestCandidates(vec pgvector.Vector, limit int) ([]SimilarityHit, error)
	NearestVacancies(vec pgvector.Vector, limit int) ([]SimilarityHit, error)
}

type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db}
}

func (r *EmbeddingRepository) FindCandidateEmbedding(candidateID uuid.UUID) (*model.CandidateEmbedding, error) {
	var e model.CandidateEmbedding
	err := r.db.First(&e, "candidate_id = ?", candidateID).Error
	return &e, err
}

func (r *EmbeddingRepository) FindVacancyEmbedding(vacancyID uuid.UUID) (*model.VacancyEmbedding, error) {
	var e model.VacancyEmbedding
	err := r.db.First(&e, "vacancy_id = ?", vacancyID).Error
	return &e, err
}

// ReplaceCandidateEmbedding removes any prior embedding for the candidate and
// inserts the new one. Deliberately delete-then-insert, not an upsert: a crash
// between the two leaves the candidate without an embedding, which readers
// treat as similarity 0.0 until the next regeneration.
func (r *EmbeddingRepository) ReplaceCandidateEmbedding(e *model.CandidateEmbedding) error {
	if err := r.db.Delete(&model.CandidateEmbedding{}, "candidate_id = ?", e.CandidateID).Error; err != nil {
		return err
	}
	return r.db.Create(e).Error
}

func (r *EmbeddingRepository) ReplaceVacancyEmbedding(e *model.VacancyEmbedding) error {
	if err := r.db.Delete(&model.VacancyEmbedding{}, "vacancy_id = ?", e.VacancyID).Error; err != nil {
		return err
	}
	return r.db.Create(e).Error
}

// NearestCandidates orders stored candidate embeddings by cosine distance to
// the given vector. pgvector's <=> operator returns cosine distance, so raw
// similarity is 1 - distance.
func (r *EmbeddingRepository) NearestCandidates(vec pgvector.Vector, limit int) ([]SimilarityHit, error) {
	var hits []SimilarityHit
	err := r.db.Raw(`
        SELECT candidate_id AS id, 1 - (embedding <=> ?) AS similarity
        FROM candidate_embeddings
        ORDER BY embedding <=> ?
        LIMIT ?
    `, vec, vec, limit).Scan(&hits).Error
	return hits, err
}

func (r *EmbeddingRepository) NearestVacancies(vec pgvector.Vector, limit int) ([]SimilarityHit, error) {
	var hits []SimilarityHit
	err := r.db.Raw(`
        SELECT vacancy_id AS id, 1 - (embedding <=> ?) AS similarity
        FROM vacancy_embeddings
        ORDER BY embedding <=> ?
        LIMIT ?
    `, vec, vec, limit).Scan(&hits).Error
	return hits, err
}
