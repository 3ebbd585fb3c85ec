package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

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

type VacancyUsecase struct {
	vacancies  repository.VacancyStore
	notes      repository.NoteStore
	embeddings *EmbeddingUsecase
	chat       service.GigaChatServiceInterface
}

func NewVacancyUsecase(vacancies repository.VacancyStore, notes repository.NoteStore, embeddings *EmbeddingUsecase, chat service.GigaChatServiceInterface) *VacancyUsecase {
	return &VacancyUsecase{vacancies: vacancies, notes: notes, embeddings: embeddings, chat: chat}
}

func (uc *VacancyUsecase) Create(ctx context.Context, vacancy *model.Vacancy) error {
	if err := uc.vacancies.Create(vacancy); err != nil {
		return err
	}
	uc.regenerateEmbedding(ctx, vacancy)
	return nil
}

func (uc *VacancyUsecase) Get(id uuid.UUID) (*model.Vacancy, error) {
	vacancy, err := uc.vacancies.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("vacancy")
		}
		return nil, err
	}
	return vacancy, nil
}

func (uc *VacancyUsecase) List(page, pageSize int) ([]model.Vacancy, int64, error) {
	return uc.vacancies.List(page, pageSize)
}

func (uc *VacancyUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateVacancyRequest) (*model.Vacancy, error) {
	vacancy, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		vacancy.Title = *req.Title
	}
	if req.Description != nil {
		vacancy.Description = *req.Description
	}
	if req.Skills != nil {
		vacancy.Skills = req.Skills
	}
	if req.MinorSkills != nil {
		vacancy.MinorSkills = req.MinorSkills
	}
	if req.Responsibilities != nil {
		vacancy.Responsibilities = req.Responsibilities
	}
	if req.Domain != nil {
		vacancy.Domain = *req.Domain
	}
	if req.ExperienceLevel != nil {
		vacancy.ExperienceLevel = *req.ExperienceLevel
	}
	if req.EmploymentType != nil {
		vacancy.EmploymentType = *req.EmploymentType
	}
	if req.Company != nil {
		vacancy.Company = *req.Company
	}
	if req.CompanyInfo != nil {
		vacancy.CompanyInfo = *req.CompanyInfo
	}
	if req.Location != nil {
		vacancy.Location = *req.Location
	}
	if req.Salary != nil {
		vacancy.Salary = *req.Salary
	}
	if req.Status != nil {
		vacancy.Status = *req.Status
	}

	if err := uc.vacancies.Update(vacancy); err != nil {
		return nil, err
	}
	uc.regenerateEmbedding(ctx, vacancy)
	return vacancy, nil
}

func (uc *VacancyUsecase) Delete(id uuid.UUID) error {
	if err := uc.vacancies.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("vacancy")
		}
		return err
	}
	return nil
}

// ListNotes returns the vacancy's notes, newest first.
func (uc *VacancyUsecase) ListNotes(vacancyID uuid.UUID, limit, offset int) ([]model.Note, error) {
	if _, err := uc.Get(vacancyID); err != nil {
		return nil, err
	}
	return uc.notes.ListByVacancy(vacancyID, limit, offset)
}

func (uc *VacancyUsecase) AddNote(vacancyID uuid.UUID, text string) (*model.Note, error) {
	if _, err := uc.Get(vacancyID); err != nil {
		return nil, err
	}
	note := &model.Note{VacancyID: vacancyID, Text: text}
	if err := uc.notes.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (uc *VacancyUsecase) UpdateNote(noteID uuid.UUID, text string) (*model.Note, error) {
	note, err := uc.notes.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("note")
		}
		return nil, err
	}
	note.Text = text
	if err := uc.notes.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (uc *VacancyUsecase) DeleteNote(noteID uuid.UUID) error {
	if err := uc.notes.Delete(noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("note")
		}
		return err
	}
	return nil
}

// CreateFromPDF extracts the job description text, asks the LLM for a
// structured vacancy, and creates it.
func (uc *VacancyUsecase) CreateFromPDF(ctx context.Context, pdfPath string) (*model.Vacancy, error) {
	text, err := util.ExtractPDFText(pdfPath)
	if err != nil {
		return nil, err
	}

	vacancy, err := uc.parseJobDescription(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := uc.Create(ctx, vacancy); err != nil {
		return nil, err
	}
	return vacancy, nil
}

func (uc *VacancyUsecase) parseJobDescription(ctx context.Context, text string) (*model.Vacancy, error) {
	system := "Ты — строгий генератор JSON. Извлеки данные вакансии из текста описания. " +
		"Выводи ТОЛЬКО JSON без пояснений и markdown со схемой: " +
		`{"title": string, "description": string, "skills": [string], ` +
		`"minor_skills": [string], "responsibilities": [string], "domain": string, ` +
		`"experience_level": string, "employment_type": string, "company": string, ` +
		`"company_info": string, "location": string, "salary": string}. ` +
		"Неизвестные поля оставляй пустыми."

	res, err := uc.chat.Chat(ctx, []service.ChatMessage{
		{Role: service.RoleSystem, Content: system},
		{Role: service.RoleUser, Content: "Текст вакансии:\n\n" + text},
	}, service.ChatOptions{Temperature: 0, MaxTokens: 1500, DisableTools: true})
	if err != nil {
		return nil, fmt.Errorf("vacancy parsing failed: %w", err)
	}

	payload, ok := util.ExtractJSONObject(res.Text)
	if !ok {
		return nil, fmt.Errorf("vacancy parsing failed: no JSON in LLM response")
	}

	vacancy := &model.Vacancy{
		Title:            gjson.Get(payload, "title").String(),
		Description:      gjson.Get(payload, "description").String(),
		Skills:           stringList(gjson.Get(payload, "skills")),
		MinorSkills:      stringList(gjson.Get(payload, "minor_skills")),
		Responsibilities: stringList(gjson.Get(payload, "responsibilities")),
		Domain:           gjson.Get(payload, "domain").String(),
		ExperienceLevel:  gjson.Get(payload, "experience_level").String(),
		EmploymentType:   gjson.Get(payload, "employment_type").String(),
		Company:          gjson.Get(payload, "company").String(),
		CompanyInfo:      gjson.Get(payload, "company_info").String(),
		Location:         gjson.Get(payload, "location").String(),
		Salary:           gjson.Get(payload, "salary").String(),
	}
	if vacancy.Title == "" {
		return nil, fmt.Errorf("vacancy parsing failed: title missing")
	}
	return vacancy, nil
}

func (uc *VacancyUsecase) regenerateEmbedding(ctx context.Context, vacancy *model.Vacancy) {
	if err := uc.embeddings.RegenerateVacancy(ctx, vacancy); err != nil {
		log.Printf("Could not generate embedding for vacancy %s: %v", vacancy.ID, err)
	}
}

func stringList(items gjson.Result) []string {
	list := []string{}
	for _, it := range items.Array() {
		if s := strings.TrimSpace(it.String()); s != "" {
			list = append(list, s)
		}
	}
	return list
}
