package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// embeddingTextLimit caps the text sent to the embedding model. A plain
// character prefix cut, chosen well below the model's token limit.
const embeddingTextLimit = 1200

type EmbeddingUsecase struct {
	embeddings repository.EmbeddingStore
	gemini     service.GeminiServiceInterface
}

func NewEmbeddingUsecase(embeddings repository.EmbeddingStore, gemini service.GeminiServiceInterface) *EmbeddingUsecase {
	return &EmbeddingUsecase{embeddings: embeddings, gemini: gemini}
}

// RegenerateCandidate recomputes and stores the candidate's embedding.
// Callers treat failure as non-fatal: a candidate without an embedding simply
// scores 0.0 until the next regeneration.
func (uc *EmbeddingUsecase) RegenerateCandidate(ctx context.Context, candidate *model.Candidate) error {
	text := CandidateEmbeddingText(candidate)
	vec, err := uc.generate(ctx, text)
	if err != nil {
		return fmt.Errorf("candidate %s: %w", candidate.ID, err)
	}
	return uc.embeddings.ReplaceCandidateEmbedding(&model.CandidateEmbedding{
		CandidateID: candidate.ID,
		Embedding:   pgvector.NewVector(vec),
		TextContent: text,
	})
}

func (uc *EmbeddingUsecase) RegenerateVacancy(ctx context.Context, vacancy *model.Vacancy) error {
	text := VacancyEmbeddingText(vacancy)
	vec, err := uc.generate(ctx, text)
	if err != nil {
		return fmt.Errorf("vacancy %s: %w", vacancy.ID, err)
	}
	return uc.embeddings.ReplaceVacancyEmbedding(&model.VacancyEmbedding{
		VacancyID:   vacancy.ID,
		Embedding:   pgvector.NewVector(vec),
		TextContent: text,
	})
}

// SimilarityByIDs returns the calibrated similarity between a candidate and a
// vacancy, or 0.0 when either side has no stored embedding.
func (uc *EmbeddingUsecase) SimilarityByIDs(candidateID, vacancyID uuid.UUID) float64 {
	ce, err := uc.embeddings.FindCandidateEmbedding(candidateID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load candidate embedding %s: %v", candidateID, err)
		}
		return 0.0
	}
	ve, err := uc.embeddings.FindVacancyEmbedding(vacancyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load vacancy embedding %s: %v", vacancyID, err)
		}
		return 0.0
	}
	raw := service.CosineSimilarity(ce.Embedding.Slice(), ve.Embedding.Slice())
	return service.CalibrateSimilarity(raw)
}

func (uc *EmbeddingUsecase) generate(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty profile text")
	}
	if len(text) > embeddingTextLimit {
		text = text[:embeddingTextLimit]
	}
	vec, err := uc.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) != model.EmbeddingDimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vec), model.EmbeddingDimension)
	}
	return vec, nil
}

// CandidateEmbeddingText assembles the candidate profile text used for
// embeddings. Skill lists are deliberately excluded: skills are scored by the
// LLM matcher, not by vector similarity.
func CandidateEmbeddingText(c *model.Candidate) string {
	var parts []string
	appendPart := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, label+": "+value)
		}
	}
	appendPart("Имя", c.Name)
	appendPart("Позиция", c.Position)
	appendPart("Локация", c.Geo)
	appendPart("Тип занятости", c.EmploymentType)
	appendPart("Опыт работы", formatExperience(c.Experience))
	appendPart("Образование", formatEducation(c.Education))
	return strings.Join(parts, " ")
}

// VacancyEmbeddingText mirrors CandidateEmbeddingText for vacancies, again
// excluding skill lists.
func VacancyEmbeddingText(v *model.Vacancy) string {
	var parts []string
	appendPart := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, label+": "+value)
		}
	}
	appendPart("Позиция", v.Title)
	appendPart("Описание", v.Description)
	appendPart("Компания", v.Company)
	appendPart("Локация", v.Location)
	appendPart("Домен", v.Domain)
	appendPart("Тип занятости", v.EmploymentType)
	appendPart("Уровень опыта", v.ExperienceLevel)
	appendPart("Обязанности", strings.Join(v.Responsibilities, "; "))
	appendPart("О компании", v.CompanyInfo)
	return strings.Join(parts, " ")
}
