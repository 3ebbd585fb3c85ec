package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/dto"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/FEgor04/moretech-hack/internal/util"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type CandidateUsecase struct {
	candidates repository.CandidateStore
	embeddings *EmbeddingUsecase
	chat       service.GigaChatServiceInterface
}

func NewCandidateUsecase(candidates repository.CandidateStore, embeddings *EmbeddingUsecase, chat service.GigaChatServiceInterface) *CandidateUsecase {
	return &CandidateUsecase{candidates: candidates, embeddings: embeddings, chat: chat}
}

func (uc *CandidateUsecase) Create(ctx context.Context, candidate *model.Candidate) error {
	if err := uc.candidates.Create(candidate); err != nil {
		return err
	}
	uc.regenerateEmbedding(ctx, candidate)
	return nil
}

func (uc *CandidateUsecase) Get(id uuid.UUID) (*model.Candidate, error) {
	candidate, err := uc.candidates.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("candidate")
		}
		return nil, err
	}
	return candidate, nil
}

func (uc *CandidateUsecase) List(page, pageSize int) ([]model.Candidate, int64, error) {
	return uc.candidates.List(page, pageSize)
}

func (uc *CandidateUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCandidateRequest) (*model.Candidate, error) {
	candidate, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Email != nil {
		candidate.Email = req.Email
	}
	if req.Position != nil {
		candidate.Position = *req.Position
	}
	if req.Experience != nil {
		candidate.Experience = req.Experience
	}
	if req.Skills != nil {
		candidate.Skills = req.Skills
	}
	if req.Tech != nil {
		candidate.Tech = req.Tech
	}
	if req.Education != nil {
		candidate.Education = req.Education
	}
	if req.Geo != nil {
		candidate.Geo = *req.Geo
	}
	if req.EmploymentType != nil {
		candidate.EmploymentType = *req.EmploymentType
	}
	if req.Salary != nil {
		candidate.Salary = *req.Salary
	}
	if req.Status != nil {
		candidate.Status = *req.Status
	}

	if err := uc.candidates.Update(candidate); err != nil {
		return nil, err
	}
	uc.regenerateEmbedding(ctx, candidate)
	return candidate, nil
}

func (uc *CandidateUsecase) Delete(id uuid.UUID) error {
	if err := uc.candidates.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("candidate")
		}
		return err
	}
	return nil
}

// CreateFromPDF extracts the résumé text, asks the LLM for a structured
// profile, and creates the candidate from it.
func (uc *CandidateUsecase) CreateFromPDF(ctx context.Context, pdfPath string) (*model.Candidate, error) {
	text, err := util.ExtractPDFText(pdfPath)
	if err != nil {
		return nil, err
	}

	candidate, err := uc.parseResume(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := uc.Create(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (uc *CandidateUsecase) parseResume(ctx context.Context, text string) (*model.Candidate, error) {
	system := "Ты — строгий генератор JSON. Извлеки данные кандидата из текста резюме. " +
		"Выводи ТОЛЬКО JSON без пояснений и markdown со схемой: " +
		`{"name": string, "email": string, "position": string, ` +
		`"experience": [{"company": string, "position": string, "years": number}], ` +
		`"skills": [string], "tech": [string], ` +
		`"education": [{"organization": string, "speciality": string, "type": string}], ` +
		`"geo": string, "employment_type": string, "salary": string}. ` +
		"Неизвестные поля оставляй пустыми."

	res, err := uc.chat.Chat(ctx, []service.ChatMessage{
		{Role: service.RoleSystem, Content: system},
		{Role: service.RoleUser, Content: "Текст резюме:\n\n" + text},
	}, service.ChatOptions{Temperature: 0, MaxTokens: 1500, DisableTools: true})
	if err != nil {
		return nil, fmt.Errorf("resume parsing failed: %w", err)
	}

	payload, ok := util.ExtractJSONObject(res.Text)
	if !ok {
		return nil, fmt.Errorf("resume parsing failed: no JSON in LLM response")
	}

	candidate := &model.Candidate{
		Name:           gjson.Get(payload, "name").String(),
		Position:       gjson.Get(payload, "position").String(),
		Skills:         stringList(gjson.Get(payload, "skills")),
		Tech:           stringList(gjson.Get(payload, "tech")),
		Geo:            gjson.Get(payload, "geo").String(),
		EmploymentType: gjson.Get(payload, "employment_type").String(),
		Salary:         gjson.Get(payload, "salary").String(),
	}
	if email := gjson.Get(payload, "email").String(); email != "" {
		candidate.Email = &email
	}
	for _, exp := range gjson.Get(payload, "experience").Array() {
		candidate.Experience = append(candidate.Experience, model.ExperienceEntry{
			Company:  exp.Get("company").String(),
			Position: exp.Get("position").String(),
			Years:    int(exp.Get("years").Int()),
		})
	}
	for _, edu := range gjson.Get(payload, "education").Array() {
		candidate.Education = append(candidate.Education, model.EducationEntry{
			Organization: edu.Get("organization").String(),
			Speciality:   edu.Get("speciality").String(),
			Type:         edu.Get("type").String(),
		})
	}

	if candidate.Name == "" {
		return nil, fmt.Errorf("resume parsing failed: candidate name missing")
	}
	return candidate, nil
}

func (uc *CandidateUsecase) regenerateEmbedding(ctx context.Context, candidate *model.Candidate) {
	if err := uc.embeddings.RegenerateCandidate(ctx, candidate); err != nil {
		log.Printf("Could not generate embedding for candidate %s: %v", candidate.ID, err)
	}
}
