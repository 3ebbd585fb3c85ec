package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// minMessagesToFinish is the transcript length (system prompt included) the
// interview must reach before the model is offered the finish tool.
const minMessagesToFinish = 8

const finishToolName = "finish_interview"

const (
	fallbackGreeting = "Здравствуйте! Я виртуальный HR-ассистент. " +
		"Готовы начать интервью? Расскажите немного о себе."
	fallbackTurnError = "Извините, произошла ошибка при обработке вашего сообщения. " +
		"Попробуйте еще раз."
	deflectFinish = "Давайте продолжим беседу. Расскажите, пожалуйста, подробнее " +
		"о вашем опыте и ожиданиях от новой роли."
	unspecified = "не указано"
)

type InterviewUsecase struct {
	interviews repository.InterviewStore
	candidates repository.CandidateStore
	vacancies  repository.VacancyStore
	chat       service.GigaChatServiceInterface
}

func NewInterviewUsecase(
	interviews repository.InterviewStore,
	candidates repository.CandidateStore,
	vacancies repository.VacancyStore,
	chat service.GigaChatServiceInterface,
) *InterviewUsecase {
	return &InterviewUsecase{
		interviews: interviews,
		candidates: candidates,
		vacancies:  vacancies,
		chat:       chat,
	}
}

func (uc *InterviewUsecase) Create(interview *model.Interview) error {
	if _, err := uc.candidates.FindByID(interview.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("candidate")
		}
		return err
	}
	if interview.VacancyID != nil {
		if _, err := uc.vacancies.FindByID(*interview.VacancyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("vacancy")
			}
			return err
		}
	}
	interview.State = model.InterviewStateInitialized
	return uc.interviews.Create(interview)
}

func (uc *InterviewUsecase) Get(id uuid.UUID) (*model.Interview, error) {
	iv, err := uc.interviews.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("interview")
		}
		return nil, err
	}
	return iv, nil
}

func (uc *InterviewUsecase) List(candidateID *uuid.UUID) ([]model.Interview, error) {
	if candidateID != nil {
		return uc.interviews.ListByCandidate(*candidateID)
	}
	return uc.interviews.List()
}

// UpdateAdmin patches interview fields outside the conversation flow. It does
// not touch state: transitions happen only through Initialize and PostMessage.
func (uc *InterviewUsecase) UpdateAdmin(id uuid.UUID, transcript, recordingURL *string) (*model.Interview, error) {
	iv, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if transcript != nil {
		iv.Transcript = *transcript
	}
	if recordingURL != nil {
		iv.RecordingURL = *recordingURL
	}
	if err := uc.interviews.Update(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

func (uc *InterviewUsecase) Delete(id uuid.UUID) error {
	if err := uc.interviews.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("interview")
		}
		return err
	}
	return nil
}

// ListMessages returns the transcript in index order. The index-0 system
// prompt is stripped unless includeSystem is set.
func (uc *InterviewUsecase) ListMessages(id uuid.UUID, includeSystem bool) ([]model.InterviewMessage, error) {
	if _, err := uc.Get(id); err != nil {
		return nil, err
	}
	messages, err := uc.interviews.ListMessages(id)
	if err != nil {
		return nil, err
	}
	if includeSystem {
		return messages, nil
	}
	visible := make([]model.InterviewMessage, 0, len(messages))
	for _, m := range messages {
		if m.Type == model.MessageTypeSystem {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

// Initialize seeds the conversation: the system prompt at index 0, the model's
// greeting at index 1, and the transition to in_progress — all or nothing.
func (uc *InterviewUsecase) Initialize(ctx context.Context, id uuid.UUID) ([]model.InterviewMessage, error) {
	err := uc.interviews.Locked(id, func(tx repository.InterviewStore, iv *model.Interview) error {
		if iv.State != model.InterviewStateInitialized {
			return apperror.NewConflict("conversation already initialized")
		}
		count, err := tx.CountMessages(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.NewConflict("conversation already initialized")
		}

		candidate, err := uc.candidates.FindByID(iv.CandidateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("candidate")
			}
			return err
		}
		var vacancy *model.Vacancy
		if iv.VacancyID != nil {
			vacancy, err = uc.vacancies.FindByID(*iv.VacancyID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				vacancy = nil
			}
		}

		systemPrompt := buildSystemPrompt(candidate, vacancy)
		if err := tx.AppendMessage(&model.InterviewMessage{
			InterviewID: id,
			Index:       0,
			Text:        systemPrompt,
			Type:        model.MessageTypeSystem,
		}); err != nil {
			return err
		}

		if err := tx.AppendMessage(&model.InterviewMessage{
			InterviewID: id,
			Index:       1,
			Text:        uc.requestGreeting(ctx, systemPrompt),
			Type:        model.MessageTypeAssistant,
		}); err != nil {
			return err
		}

		iv.State = model.InterviewStateInProgress
		return tx.Update(iv)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("interview")
		}
		return nil, err
	}
	return uc.interviews.ListMessages(id)
}

// PostMessage appends the user's message, runs one model turn, and appends the
// reply (or finishes the interview when the model calls the finish tool).
func (uc *InterviewUsecase) PostMessage(ctx context.Context, id uuid.UUID, text string) ([]model.InterviewMessage, error) {
	err := uc.interviews.Locked(id, func(tx repository.InterviewStore, iv *model.Interview) error {
		switch iv.State {
		case model.InterviewStateInitialized:
			return apperror.NewConflict("conversation is not initialized")
		case model.InterviewStateDone:
			return apperror.NewConflict("interview is already finished")
		}

		nextIndex, err := tx.CountMessages(id)
		if err != nil {
			return err
		}
		if err := tx.AppendMessage(&model.InterviewMessage{
			InterviewID: id,
			Index:       nextIndex,
			Text:        text,
			Type:        model.MessageTypeUser,
		}); err != nil {
			return err
		}

		history, err := tx.ListMessages(id)
		if err != nil {
			return err
		}

		opts := service.ChatOptions{Temperature: 0.7, MaxTokens: 1000}
		if len(history) >= minMessagesToFinish {
			opts.Tools = []service.ToolSpec{finishTool()}
		} else {
			opts.DisableTools = true
		}

		res, err := uc.chat.Chat(ctx, toChatMessages(history), opts)
		if err != nil {
			log.Printf("Interview %s: chat turn failed: %v", id, err)
			return tx.AppendMessage(assistantMessage(id, nextIndex+1, fallbackTurnError))
		}

		if res.ToolCall != nil {
			if res.ToolCall.Name != finishToolName {
				log.Printf("Interview %s: unexpected tool call %q", id, res.ToolCall.Name)
				return tx.AppendMessage(assistantMessage(id, nextIndex+1, fallbackTurnError))
			}
			count, err := tx.CountMessages(id)
			if err != nil {
				return err
			}
			if count < minMessagesToFinish {
				// The model jumped the gun: keep talking instead.
				return tx.AppendMessage(assistantMessage(id, nextIndex+1, deflectFinish))
			}

			feedback := gjson.Get(res.ToolCall.Arguments, "feedback").String()
			positive := gjson.Get(res.ToolCall.Arguments, "positive").Bool()
			iv.Feedback = &feedback
			iv.FeedbackPositive = &positive
			iv.State = model.InterviewStateDone
			log.Printf("Interview %s finished with feedback", id)
			return tx.Update(iv)
		}

		return tx.AppendMessage(assistantMessage(id, nextIndex+1, res.Text))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("interview")
		}
		return nil, err
	}
	return uc.interviews.ListMessages(id)
}

func (uc *InterviewUsecase) requestGreeting(ctx context.Context, systemPrompt string) string {
	res, err := uc.chat.Chat(ctx, []service.ChatMessage{
		{Role: service.RoleSystem, Content: systemPrompt},
		{Role: service.RoleUser, Content: "Начни интервью с приветствия"},
	}, service.ChatOptions{Temperature: 0.3, MaxTokens: 200, DisableTools: true})
	if err != nil {
		log.Printf("Failed to get initial greeting: %v", err)
		return fallbackGreeting
	}
	if res.ToolCall != nil || res.Text == "" {
		return fallbackGreeting
	}
	return res.Text
}

func finishTool() service.ToolSpec {
	return service.ToolSpec{
		Name:        finishToolName,
		Description: "Завершает интервью и сохраняет фидбек",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"feedback": map[string]any{
					"type":        "string",
					"description": "Подробный фидбек по кандидату",
				},
				"positive": map[string]any{
					"type":        "boolean",
					"description": "Положительный ли фидбек",
				},
			},
			"required": []string{"feedback", "positive"},
		},
	}
}

func toChatMessages(history []model.InterviewMessage) []service.ChatMessage {
	messages := make([]service.ChatMessage, 0, len(history))
	for _, m := range history {
		role := service.RoleUser
		switch m.Type {
		case model.MessageTypeSystem:
			role = service.RoleSystem
		case model.MessageTypeAssistant:
			role = service.RoleAssistant
		}
		messages = append(messages, service.ChatMessage{Role: role, Content: m.Text})
	}
	return messages
}

func assistantMessage(id uuid.UUID, index int, text string) *model.InterviewMessage {
	return &model.InterviewMessage{
		InterviewID: id,
		Index:       index,
		Text:        text,
		Type:        model.MessageTypeAssistant,
	}
}

// buildSystemPrompt renders the interviewer instructions over the full
// candidate and vacancy profiles. Deterministic: same inputs, same prompt.
func buildSystemPrompt(candidate *model.Candidate, vacancy *model.Vacancy) string {
	var b strings.Builder
	b.WriteString("Ты ассистент HR, проводишь первичное интервью с кандидатом. ")
	b.WriteString("Твоя задача - собрать краткую информацию о кандидате, ")
	b.WriteString("оценить его соответствие позиции и дать рекомендации. ")
	b.WriteString("Будь дружелюбен, профессионален и говори только по-русски.\n\n")

	b.WriteString("Информация о кандидате:\n")
	writeField(&b, "Имя", candidate.Name)
	writeField(&b, "Позиция", candidate.Position)
	writeField(&b, "Опыт работы", formatExperience(candidate.Experience))
	writeField(&b, "Навыки", strings.Join(candidate.Skills, ", "))
	writeField(&b, "Технологии", strings.Join(candidate.Tech, ", "))
	writeField(&b, "Образование", formatEducation(candidate.Education))
	writeField(&b, "Локация", candidate.Geo)
	writeField(&b, "Тип занятости", candidate.EmploymentType)
	writeField(&b, "Зарплатные ожидания", candidate.Salary)

	if vacancy != nil {
		b.WriteString("\nИнформация о вакансии:\n")
		writeField(&b, "Название", vacancy.Title)
		writeField(&b, "Описание", vacancy.Description)
		writeField(&b, "Ключевые навыки", strings.Join(vacancy.Skills, ", "))
		writeField(&b, "Дополнительные навыки", strings.Join(vacancy.MinorSkills, ", "))
		writeField(&b, "Обязанности", strings.Join(vacancy.Responsibilities, ", "))
		writeField(&b, "Уровень", vacancy.ExperienceLevel)
		writeField(&b, "Компания", vacancy.Company)
		writeField(&b, "Зарплата", vacancy.Salary)
	} else {
		b.WriteString("\nВакансия не указана.\n")
	}

	b.WriteString("\nНачни с приветствия и попроси кандидата рассказать о себе.")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = unspecified
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func formatExperience(entries []model.ExperienceEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		part := e.Position
		if e.Company != "" {
			part = fmt.Sprintf("%s в %s", e.Position, e.Company)
		}
		if e.Years > 0 {
			part += " (" + strconv.Itoa(e.Years) + " лет)"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func formatEducation(entries []model.EducationEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		part := e.Organization
		if e.Speciality != "" {
			part += ", " + e.Speciality
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
