package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/dto"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Experience-vs-seniority verdicts used in reports.
const (
	fitIdeal         = "Идеальное совпадение"
	fitOverqualified = "Переквалификация"
	fitUnderLevel    = "Недостаточная квалификация"
	fitAdjust        = "Может потребоваться корректировка"
	fitUnknownLevel  = "Хорошее совпадение"
)

type CompatibilityUsecase struct {
	candidates repository.CandidateStore
	vacancies  repository.VacancyStore
	embeddings repository.EmbeddingStore
	similarity *EmbeddingUsecase
	skills     service.SkillsServiceInterface
}

func NewCompatibilityUsecase(
	candidates repository.CandidateStore,
	vacancies repository.VacancyStore,
	embeddings repository.EmbeddingStore,
	similarity *EmbeddingUsecase,
	skills service.SkillsServiceInterface,
) *CompatibilityUsecase {
	return &CompatibilityUsecase{
		candidates: candidates,
		vacancies:  vacancies,
		embeddings: embeddings,
		similarity: similarity,
		skills:     skills,
	}
}

// BuildReport assembles the full compatibility report. Returns (nil, nil)
// when either entity does not exist.
func (uc *CompatibilityUsecase) BuildReport(ctx context.Context, candidateID, vacancyID uuid.UUID) (*dto.CompatibilityReport, error) {
	candidate, err := uc.candidates.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	vacancy, err := uc.vacancies.FindByID(vacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	similarity := uc.similarity.SimilarityByIDs(candidateID, vacancyID)
	skillsAnalysis := uc.analyzeSkills(ctx, candidate, vacancy)
	experienceAnalysis := analyzeExperience(candidate, vacancy)

	overall := service.OverallScore(similarity, float64(skillsAnalysis.MatchedPercentage))
	level := service.MatchLevelFromScore(overall)

	concerns := buildConcerns(skillsAnalysis, experienceAnalysis, overall)
	recommendation := buildRecommendation(level)
	strengths := buildStrengths(skillsAnalysis, experienceAnalysis)

	return &dto.CompatibilityReport{
		ExecutiveSummary: dto.ExecutiveSummary{
			OverallMatchScore: fmt.Sprintf("%.0f%%", overall),
			MatchLevel:        level,
			Recommendation:    recommendation,
			KeyStrengths:      strengths,
			MainConcerns:      concerns[:2],
		},
		CandidateProfile: candidateProfile(candidate, experienceAnalysis.RelevantExperienceYears),
		DetailedAnalysis: dto.DetailedAnalysis{
			CandidateAnalysis: dto.CandidateAnalysis{
				SkillsMatch:        skillsAnalysis,
				ExperienceAnalysis: experienceAnalysis,
			},
		},
		PotentialConcerns:    concerns,
		HiringRecommendation: recommendation,
		NextSteps:            buildNextSteps(level),
	}, nil
}

// TopVacanciesForCandidate returns the closest vacancies by embedding
// similarity, one row per vacancy with calibrated scores.
func (uc *CompatibilityUsecase) TopVacanciesForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]dto.VacancyMatch, error) {
	if _, err := uc.candidates.FindByID(candidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("candidate")
		}
		return nil, err
	}

	ce, err := uc.embeddings.FindCandidateEmbedding(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.VacancyMatch{}, nil
		}
		return nil, err
	}

	hits, err := uc.embeddings.NearestVacancies(ce.Embedding, limit)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.VacancyMatch, 0, len(hits))
	for _, hit := range hits {
		vacancy, err := uc.vacancies.FindByID(hit.ID)
		if err != nil {
			log.Printf("Skipping vacancy %s in top search: %v", hit.ID, err)
			continue
		}
		similarity := service.CalibrateSimilarity(hit.Similarity)
		matches = append(matches, dto.VacancyMatch{
			VacancyID:       vacancy.ID,
			Title:           vacancy.Title,
			Company:         vacancy.Company,
			Location:        vacancy.Location,
			Domain:          vacancy.Domain,
			EmploymentType:  vacancy.EmploymentType,
			ExperienceLevel: vacancy.ExperienceLevel,
			SimilarityScore: round2(similarity * 100),
			OverallScore:    round2(uc.overallOrSimilarity(ctx, candidateID, vacancy.ID, similarity)),
			MatchLevel:      service.MatchLevelFromScore(similarity * 100),
		})
	}
	return matches, nil
}

func (uc *CompatibilityUsecase) TopCandidatesForVacancy(ctx context.Context, vacancyID uuid.UUID, limit int) ([]dto.CandidateMatch, error) {
	if _, err := uc.vacancies.FindByID(vacancyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("vacancy")
		}
		return nil, err
	}

	ve, err := uc.embeddings.FindVacancyEmbedding(vacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.CandidateMatch{}, nil
		}
		return nil, err
	}

	hits, err := uc.embeddings.NearestCandidates(ve.Embedding, limit)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.CandidateMatch, 0, len(hits))
	for _, hit := range hits {
		candidate, err := uc.candidates.FindByID(hit.ID)
		if err != nil {
			log.Printf("Skipping candidate %s in top search: %v", hit.ID, err)
			continue
		}
		similarity := service.CalibrateSimilarity(hit.Similarity)
		matches = append(matches, dto.CandidateMatch{
			CandidateID:     candidate.ID,
			Name:            candidate.Name,
			Position:        candidate.Position,
			Email:           candidate.Email,
			Geo:             candidate.Geo,
			EmploymentType:  candidate.EmploymentType,
			SimilarityScore: round2(similarity * 100),
			OverallScore:    round2(uc.overallOrSimilarity(ctx, candidate.ID, vacancyID, similarity)),
			MatchLevel:      service.MatchLevelFromScore(similarity * 100),
		})
	}
	return matches, nil
}

// overallOrSimilarity aligns top-N rows with the full report's overall score,
// falling back to the similarity percentage when a report cannot be built.
func (uc *CompatibilityUsecase) overallOrSimilarity(ctx context.Context, candidateID, vacancyID uuid.UUID, similarity float64) float64 {
	report, err := uc.BuildReport(ctx, candidateID, vacancyID)
	if err != nil || report == nil {
		return similarity * 100
	}
	var overall float64
	if _, err := fmt.Sscanf(report.ExecutiveSummary.OverallMatchScore, "%f%%", &overall); err != nil {
		return similarity * 100
	}
	return overall
}

func (uc *CompatibilityUsecase) analyzeSkills(ctx context.Context, candidate *model.Candidate, vacancy *model.Vacancy) dto.SkillsMatchAnalysis {
	candidateSkills := append(append([]string{}, candidate.Skills...), candidate.Tech...)
	vacancySkills := append(append([]string{}, vacancy.Skills...), vacancy.MinorSkills...)

	match := uc.skills.Match(ctx, candidateSkills, vacancySkills)

	percentage := 0
	if len(vacancySkills) > 0 {
		percentage = int(float64(len(match.Matching)) / float64(len(vacancySkills)) * 100)
	}

	matched := make(map[string]bool, len(match.Matching))
	for _, m := range match.Matching {
		matched[strings.TrimSpace(m)] = true
	}
	required := make(map[string]bool, len(vacancySkills))
	for _, v := range vacancySkills {
		required[strings.TrimSpace(v)] = true
	}
	bonus := []string{}
	seen := map[string]bool{}
	for _, s := range candidateSkills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] || matched[s] || required[s] {
			continue
		}
		seen[s] = true
		bonus = append(bonus, s)
	}

	var gap string
	switch {
	case percentage >= 80:
		gap = "Отличное совпадение навыков"
	case percentage >= 60:
		gap = "Хорошее совпадение навыков с небольшими пробелами"
	case percentage >= 40:
		gap = "Умеренный пробел в навыках, требуется обучение"
	default:
		gap = "Значительный пробел в навыках, требуется обширное обучение"
	}

	return dto.SkillsMatchAnalysis{
		MatchedCoreSkills:     match.Matching,
		MatchedPercentage:     percentage,
		MissingCriticalSkills: match.Unmatching,
		BonusSkills:           bonus,
		SkillsGapAssessment:   gap,
	}
}

func analyzeExperience(candidate *model.Candidate, vacancy *model.Vacancy) dto.ExperienceAnalysis {
	totalYears := candidate.TotalExperienceYears()

	candidateDomain := "General"
	vacancyDomain := vacancy.Domain
	if vacancyDomain == "" {
		vacancyDomain = "General"
	}
	switch strings.ToLower(vacancyDomain) {
	case "it", "технологии", "разработка":
		for _, exp := range candidate.Experience {
			lower := strings.ToLower(exp.Position + " " + exp.Company)
			if strings.Contains(lower, "разработ") || strings.Contains(lower, "программ") {
				candidateDomain = "IT"
				break
			}
		}
	}

	var progression string
	switch {
	case totalYears >= 5:
		progression = "Старший уровень с потенциалом лидерства"
	case totalYears >= 3:
		progression = "Средний уровень с потенциалом роста"
	case totalYears >= 1:
		progression = "Переход от младшего к среднему уровню"
	default:
		progression = "Начальный уровень"
	}

	relevantProjects := []string{}
	for _, exp := range candidate.Experience {
		position := strings.ToLower(exp.Position)
		for _, keyword := range []string{"разработ", "программ", "анализ", "управлен"} {
			if strings.Contains(position, keyword) {
				relevantProjects = append(relevantProjects, fmt.Sprintf("%s at %s", exp.Position, exp.Company))
				break
			}
		}
		if len(relevantProjects) == 3 {
			break
		}
	}

	level := vacancy.ExperienceLevel
	if level == "" {
		level = "средний"
	}
	var fit string
	switch strings.ToLower(level) {
	case "младший", "junior":
		if totalYears <= 2 {
			fit = fitIdeal
		} else {
			fit = fitOverqualified
		}
	case "средний", "middle":
		if totalYears >= 2 && totalYears <= 5 {
			fit = fitIdeal
		} else {
			fit = fitAdjust
		}
	case "старший", "senior":
		if totalYears >= 3 {
			fit = fitIdeal
		} else {
			fit = fitUnderLevel
		}
	default:
		fit = fitUnknownLevel
	}

	return dto.ExperienceAnalysis{
		RelevantExperienceYears: totalYears,
		DomainMatch:             candidateDomain + " -> " + vacancyDomain,
		RoleProgression:         progression,
		RelevantProjects:        relevantProjects,
		ExperienceLevelFit:      fit,
	}
}

func buildConcerns(skills dto.SkillsMatchAnalysis, experience dto.ExperienceAnalysis, overall float64) []string {
	var concerns []string

	switch {
	case skills.MatchedPercentage < 40:
		concerns = append(concerns, fmt.Sprintf("Недостаточное совпадение по навыкам (%d%% совпадения)", skills.MatchedPercentage))
	case skills.MatchedPercentage < 60:
		concerns = append(concerns, "Существенный разрыв в навыках: "+skills.SkillsGapAssessment)
	case len(skills.MissingCriticalSkills) > 0:
		missing := skills.MissingCriticalSkills
		if len(missing) > 3 {
			missing = missing[:3]
		}
		concerns = append(concerns, "Отсутствуют критически важные навыки: "+strings.Join(missing, ", "))
	}

	switch experience.ExperienceLevelFit {
	case fitOverqualified:
		concerns = append(concerns, "Риск переквалификации — кандидат может ожидать более высокую компенсацию")
	case fitUnderLevel:
		concerns = append(concerns, "Может потребоваться дополнительное обучение и менторство")
	}

	if overall < 70 {
		concerns = append(concerns, "Общая совместимость ниже рекомендуемого порога")
	}

	concerns = append(concerns,
		"Необходимо обсудить ожидания по зарплате",
		"Требуется уточнить предпочтения по локации и удаленной работе",
		"Нужно уточнить срок уведомления об увольнении и доступность",
	)
	return concerns
}

func buildStrengths(skills dto.SkillsMatchAnalysis, experience dto.ExperienceAnalysis) []string {
	strengths := []string{}
	switch {
	case skills.MatchedPercentage >= 60:
		strengths = append(strengths, fmt.Sprintf("Сильное совпадение по навыкам (%d%% совпадения)", skills.MatchedPercentage))
	case skills.MatchedPercentage >= 40:
		strengths = append(strengths, fmt.Sprintf("Умеренное совпадение по навыкам (%d%% совпадения)", skills.MatchedPercentage))
	}
	if experience.RelevantExperienceYears > 0 {
		strengths = append(strengths, fmt.Sprintf("Релевантный опыт (%d лет)", experience.RelevantExperienceYears))
	}
	return strengths
}

func buildRecommendation(level string) string {
	switch level {
	case service.MatchLevelExcellent:
		return "Сильная рекомендация для немедленного собеседования и возможного найма"
	case service.MatchLevelGood:
		return "Хороший кандидат, рекомендуется собеседование с фокусом на конкретные пробелы в навыках"
	case service.MatchLevelModerate:
		return "Рассмотреть для собеседования, если нет лучших кандидатов, обсудить потребности в обучении"
	default:
		return "Не рекомендуется для данной позиции, рассмотреть для других ролей"
	}
}

func buildNextSteps(level string) []string {
	switch level {
	case service.MatchLevelExcellent, service.MatchLevelGood:
		return []string{
			"Запланировать техническое собеседование в течение 1 недели",
			"Подготовить оценку навыков для недостающих компетенций",
			"Обсудить ожидания по зарплате и льготам",
			"Организовать встречу с тимлидом для оценки культурного соответствия",
		}
	case service.MatchLevelModerate:
		return []string{
			"Запланировать предварительное собеседование для оценки потенциала",
			"Подготовить детальный план обучения для пробелов в навыках",
			"Рассмотреть испытательный период с наставничеством",
			"Оценить по сравнению с другими кандидатами перед окончательным решением",
		}
	default:
		return []string{
			"Рассмотреть для других открытых позиций, если доступны",
			"Сохранить в пуле талантов для будущих возможностей",
			"Предоставить обратную связь по областям для улучшения",
		}
	}
}

func candidateProfile(candidate *model.Candidate, years int) dto.CandidateProfile {
	location := candidate.Geo
	if location == "" {
		location = "Not specified"
	}
	employment := candidate.EmploymentType
	if employment == "" {
		employment = "Not specified"
	}
	contact := "Not provided"
	if candidate.Email != nil && *candidate.Email != "" {
		contact = *candidate.Email
	}
	return dto.CandidateProfile{
		Name:                candidate.Name,
		CurrentPosition:     candidate.Position,
		ExperienceLevel:     fmt.Sprintf("%d years", years),
		Location:            location,
		PreferredEmployment: employment,
		Contact:             contact,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
