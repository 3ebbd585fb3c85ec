package usecase

import (
	"context"
	"testing"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVector() pgvector.Vector {
	vec := make([]float32, model.EmbeddingDimension)
	vec[0] = 1
	return pgvector.NewVector(vec)
}

func compatibilityFixture() (*fakeCandidateStore, *fakeVacancyStore, *fakeEmbeddingStore, *model.Candidate, *model.Vacancy) {
	candidate := &model.Candidate{
		ID:       uuid.New(),
		Name:     "Иван Петров",
		Position: "Go разработчик",
		Skills:   []string{"Go", "SQL", "Docker"},
		Experience: []model.ExperienceEntry{
			{Company: "Банк", Position: "Разработчик", Years: 3},
		},
	}
	vacancy := &model.Vacancy{
		ID:              uuid.New(),
		Title:           "Backend разработчик",
		Skills:          []string{"Go", "SQL"},
		ExperienceLevel: "средний",
	}
	return newFakeCandidateStore(candidate), newFakeVacancyStore(vacancy), newFakeEmbeddingStore(), candidate, vacancy
}

func newCompatibilityUsecase(
	candidates *fakeCandidateStore,
	vacancies *fakeVacancyStore,
	embeddings *fakeEmbeddingStore,
	match service.SkillMatch,
) *CompatibilityUsecase {
	embeddingUC := NewEmbeddingUsecase(embeddings, nil)
	return NewCompatibilityUsecase(candidates, vacancies, embeddings, embeddingUC, &fixedSkills{match: match})
}

func TestBuildReportMissingEntities(t *testing.T) {
	candidates, vacancies, embeddings, candidate, vacancy := compatibilityFixture()
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{})

	report, err := uc.BuildReport(context.Background(), uuid.New(), vacancy.ID)
	require.NoError(t, err)
	assert.Nil(t, report)

	report, err = uc.BuildReport(context.Background(), candidate.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestBuildReportWithoutEmbeddings(t *testing.T) {
	candidates, vacancies, embeddings, candidate, vacancy := compatibilityFixture()
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{
		Matching:   []string{"Go", "SQL"},
		Unmatching: []string{},
	})

	report, err := uc.BuildReport(context.Background(), candidate.ID, vacancy.ID)
	require.NoError(t, err)
	require.NotNil(t, report)

	// No stored embeddings: similarity 0, skills carry the whole score.
	assert.Equal(t, "60%", report.ExecutiveSummary.OverallMatchScore)
	assert.Equal(t, service.MatchLevelModerate, report.ExecutiveSummary.MatchLevel)

	skills := report.DetailedAnalysis.CandidateAnalysis.SkillsMatch
	assert.Equal(t, 100, skills.MatchedPercentage)
	assert.Equal(t, []string{"Go", "SQL"}, skills.MatchedCoreSkills)
	assert.Empty(t, skills.MissingCriticalSkills)
	assert.Equal(t, []string{"Docker"}, skills.BonusSkills)

	experience := report.DetailedAnalysis.CandidateAnalysis.ExperienceAnalysis
	assert.Equal(t, 3, experience.RelevantExperienceYears)
	assert.Equal(t, fitIdeal, experience.ExperienceLevelFit)
	assert.Equal(t, "Средний уровень с потенциалом роста", experience.RoleProgression)
	require.Len(t, experience.RelevantProjects, 1)
	assert.Equal(t, "Разработчик at Банк", experience.RelevantProjects[0])

	assert.Contains(t, report.PotentialConcerns, "Общая совместимость ниже рекомендуемого порога")
	assert.Len(t, report.ExecutiveSummary.MainConcerns, 2)
	assert.Equal(t, report.PotentialConcerns[:2], report.ExecutiveSummary.MainConcerns)

	assert.Equal(t, "3 years", report.CandidateProfile.ExperienceLevel)
	assert.Contains(t, report.ExecutiveSummary.KeyStrengths, "Сильное совпадение по навыкам (100% совпадения)")
}

func TestBuildReportWithIdenticalEmbeddings(t *testing.T) {
	candidates, vacancies, embeddings, candidate, vacancy := compatibilityFixture()
	embeddings.candidateVectors[candidate.ID] = unitVector()
	embeddings.vacancyVectors[vacancy.ID] = unitVector()
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{
		Matching:   []string{"Go", "SQL"},
		Unmatching: []string{},
	})

	report, err := uc.BuildReport(context.Background(), candidate.ID, vacancy.ID)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "100%", report.ExecutiveSummary.OverallMatchScore)
	assert.Equal(t, service.MatchLevelExcellent, report.ExecutiveSummary.MatchLevel)
	assert.NotContains(t, report.PotentialConcerns, "Общая совместимость ниже рекомендуемого порога")
}

func TestBuildReportMissingSkillsConcern(t *testing.T) {
	candidates, vacancies, embeddings, candidate, vacancy := compatibilityFixture()
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{
		Matching:   []string{},
		Unmatching: []string{"Go", "SQL"},
	})

	report, err := uc.BuildReport(context.Background(), candidate.ID, vacancy.ID)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "0%", report.ExecutiveSummary.OverallMatchScore)
	assert.Equal(t, service.MatchLevelPoor, report.ExecutiveSummary.MatchLevel)
	assert.Contains(t, report.PotentialConcerns, "Недостаточное совпадение по навыкам (0% совпадения)")
}

func TestTopVacanciesForUnknownCandidate(t *testing.T) {
	candidates, vacancies, embeddings, _, _ := compatibilityFixture()
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{})

	_, err := uc.TopVacanciesForCandidate(context.Background(), uuid.New(), 10)
	assert.True(t, apperror.IsNotFound(err))
}

func TestTopVacanciesWithoutEmbedding(t *testing.T) {
	candidates, vacancies, embeddings, candidate, _ := compatibilityFixture()
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{})

	matches, err := uc.TopVacanciesForCandidate(context.Background(), candidate.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTopVacanciesForCandidate(t *testing.T) {
	candidates, vacancies, embeddings, candidate, vacancy := compatibilityFixture()
	embeddings.candidateVectors[candidate.ID] = unitVector()
	embeddings.vacancyVectors[vacancy.ID] = unitVector()
	embeddings.nearestVacancies = []repository.SimilarityHit{
		{ID: vacancy.ID, Similarity: 0.95},
		{ID: uuid.New(), Similarity: 0.90},
	}
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{
		Matching:   []string{"Go", "SQL"},
		Unmatching: []string{},
	})

	matches, err := uc.TopVacanciesForCandidate(context.Background(), candidate.ID, 10)
	require.NoError(t, err)

	// The hit pointing at a vacancy that no longer exists is skipped.
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, vacancy.ID, m.VacancyID)
	assert.Equal(t, "Backend разработчик", m.Title)
	assert.InDelta(t, 85.0, m.SimilarityScore, 1e-9)
	assert.Equal(t, service.MatchLevelExcellent, m.MatchLevel)
	assert.InDelta(t, 100.0, m.OverallScore, 1e-9)
}

func TestTopCandidatesForVacancy(t *testing.T) {
	candidates, vacancies, embeddings, candidate, vacancy := compatibilityFixture()
	embeddings.candidateVectors[candidate.ID] = unitVector()
	embeddings.vacancyVectors[vacancy.ID] = unitVector()
	embeddings.nearestCandidates = []repository.SimilarityHit{
		{ID: candidate.ID, Similarity: 0.85},
	}
	uc := newCompatibilityUsecase(candidates, vacancies, embeddings, service.SkillMatch{
		Matching:   []string{"Go", "SQL"},
		Unmatching: []string{},
	})

	matches, err := uc.TopCandidatesForVacancy(context.Background(), vacancy.ID, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, candidate.ID, m.CandidateID)
	assert.Equal(t, "Иван Петров", m.Name)
	assert.InDelta(t, 70.0, m.SimilarityScore, 1e-9)
	assert.Equal(t, service.MatchLevelGood, m.MatchLevel)
}

func TestSimilarityByIDs(t *testing.T) {
	embeddings := newFakeEmbeddingStore()
	uc := NewEmbeddingUsecase(embeddings, nil)

	candidateID := uuid.New()
	vacancyID := uuid.New()
	assert.Equal(t, 0.0, uc.SimilarityByIDs(candidateID, vacancyID))

	embeddings.candidateVectors[candidateID] = unitVector()
	assert.Equal(t, 0.0, uc.SimilarityByIDs(candidateID, vacancyID), "one-sided embeddings score zero")

	embeddings.vacancyVectors[vacancyID] = unitVector()
	assert.InDelta(t, 1.0, uc.SimilarityByIDs(candidateID, vacancyID), 1e-9)
}

func TestEmbeddingTextExcludesSkills(t *testing.T) {
	candidate := &model.Candidate{
		Name:   "Анна",
		Skills: []string{"Go"},
		Tech:   []string{"Kubernetes"},
	}
	text := CandidateEmbeddingText(candidate)
	assert.Contains(t, text, "Имя: Анна")
	assert.NotContains(t, text, "Go")
	assert.NotContains(t, text, "Kubernetes")

	vacancy := &model.Vacancy{
		Title:       "Разработчик",
		Skills:      []string{"Go"},
		MinorSkills: []string{"Kafka"},
	}
	vtext := VacancyEmbeddingText(vacancy)
	assert.Contains(t, vtext, "Позиция: Разработчик")
	assert.NotContains(t, vtext, "Go")
	assert.NotContains(t, vtext, "Kafka")
}
