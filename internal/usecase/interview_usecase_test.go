package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interviewFixture(state string) (*fakeInterviewStore, *fakeCandidateStore, *fakeVacancyStore, *model.Interview) {
	candidate := &model.Candidate{
		ID:       uuid.New(),
		Name:     "Иван Петров",
		Position: "Go разработчик",
		Experience: []model.ExperienceEntry{
			{Company: "Банк", Position: "Разработчик", Years: 3},
		},
	}
	vacancy := &model.Vacancy{
		ID:     uuid.New(),
		Title:  "Backend разработчик",
		Skills: []string{"Go", "PostgreSQL"},
	}
	interview := &model.Interview{
		ID:          uuid.New(),
		CandidateID: candidate.ID,
		VacancyID:   &vacancy.ID,
		State:       state,
	}
	return newFakeInterviewStore(interview), newFakeCandidateStore(candidate), newFakeVacancyStore(vacancy), interview
}

func seedMessages(store *fakeInterviewStore, interviewID uuid.UUID, count int) {
	for i := 0; i < count; i++ {
		msgType := model.MessageTypeUser
		switch {
		case i == 0:
			msgType = model.MessageTypeSystem
		case i%2 == 1:
			msgType = model.MessageTypeAssistant
		}
		_ = store.AppendMessage(&model.InterviewMessage{
			InterviewID: interviewID,
			Index:       i,
			Text:        fmt.Sprintf("сообщение %d", i),
			Type:        msgType,
		})
	}
}

func TestInitializeSeedsConversation(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInitialized)
	chat := &scriptedChat{results: []*service.ChatResult{{Text: "Здравствуйте, Иван!"}}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	messages, err := uc.Initialize(context.Background(), iv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, 0, messages[0].Index)
	assert.Equal(t, model.MessageTypeSystem, messages[0].Type)
	assert.Contains(t, messages[0].Text, "Иван Петров")
	assert.Contains(t, messages[0].Text, "Backend разработчик")

	assert.Equal(t, 1, messages[1].Index)
	assert.Equal(t, model.MessageTypeAssistant, messages[1].Type)
	assert.Equal(t, "Здравствуйте, Иван!", messages[1].Text)

	stored, err := interviews.FindByID(iv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStateInProgress, stored.State)

	require.Len(t, chat.opts, 1)
	assert.True(t, chat.opts[0].DisableTools)
	assert.InDelta(t, 0.3, chat.opts[0].Temperature, 1e-9)
	assert.Equal(t, 200, chat.opts[0].MaxTokens)
}

func TestInitializeUsesFallbackGreetingOnChatError(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInitialized)
	chat := &scriptedChat{errs: []error{fmt.Errorf("gigachat down")}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	messages, err := uc.Initialize(context.Background(), iv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, fallbackGreeting, messages[1].Text)

	stored, _ := interviews.FindByID(iv.ID)
	assert.Equal(t, model.InterviewStateInProgress, stored.State)
}

func TestInitializeTwiceConflicts(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInitialized)
	chat := &scriptedChat{results: []*service.ChatResult{{Text: "Привет!"}}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	_, err := uc.Initialize(context.Background(), iv.ID)
	require.NoError(t, err)

	_, err = uc.Initialize(context.Background(), iv.ID)
	assert.True(t, apperror.IsConflict(err))
}

func TestInitializeUnknownInterview(t *testing.T) {
	interviews, candidates, vacancies, _ := interviewFixture(model.InterviewStateInitialized)
	uc := NewInterviewUsecase(interviews, candidates, vacancies, &scriptedChat{})

	_, err := uc.Initialize(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestPostMessageBeforeInitializeConflicts(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInitialized)
	uc := NewInterviewUsecase(interviews, candidates, vacancies, &scriptedChat{})

	_, err := uc.PostMessage(context.Background(), iv.ID, "привет")
	assert.True(t, apperror.IsConflict(err))
}

func TestPostMessageAfterDoneConflicts(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateDone)
	uc := NewInterviewUsecase(interviews, candidates, vacancies, &scriptedChat{})

	_, err := uc.PostMessage(context.Background(), iv.ID, "привет")
	assert.True(t, apperror.IsConflict(err))
}

func TestPostMessageAppendsUserAndReplyContiguously(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInProgress)
	seedMessages(interviews, iv.ID, 2)
	chat := &scriptedChat{results: []*service.ChatResult{{Text: "Расскажите о вашем опыте."}}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	messages, err := uc.PostMessage(context.Background(), iv.ID, "Готов начать")
	require.NoError(t, err)
	require.Len(t, messages, 4)

	for i, m := range messages {
		assert.Equal(t, i, m.Index)
	}
	assert.Equal(t, model.MessageTypeUser, messages[2].Type)
	assert.Equal(t, "Готов начать", messages[2].Text)
	assert.Equal(t, model.MessageTypeAssistant, messages[3].Type)
	assert.Equal(t, "Расскажите о вашем опыте.", messages[3].Text)

	require.Len(t, chat.opts, 1)
	assert.True(t, chat.opts[0].DisableTools, "finish tool must not be offered below the threshold")
	assert.InDelta(t, 0.7, chat.opts[0].Temperature, 1e-9)
	assert.Equal(t, 1000, chat.opts[0].MaxTokens)
}

func TestPostMessagePersistsFallbackOnChatError(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInProgress)
	seedMessages(interviews, iv.ID, 2)
	chat := &scriptedChat{errs: []error{fmt.Errorf("timeout")}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	messages, err := uc.PostMessage(context.Background(), iv.ID, "Готов начать")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, fallbackTurnError, messages[3].Text)
	assert.Equal(t, model.MessageTypeAssistant, messages[3].Type)

	stored, _ := interviews.FindByID(iv.ID)
	assert.Equal(t, model.InterviewStateInProgress, stored.State, "chat failure must not change state")
}

func TestPostMessageOffersFinishToolAtThreshold(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInProgress)
	seedMessages(interviews, iv.ID, minMessagesToFinish-1)
	chat := &scriptedChat{results: []*service.ChatResult{{Text: "Спасибо, понял."}}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	_, err := uc.PostMessage(context.Background(), iv.ID, "ещё одно сообщение")
	require.NoError(t, err)

	require.Len(t, chat.opts, 1)
	assert.False(t, chat.opts[0].DisableTools)
	require.Len(t, chat.opts[0].Tools, 1)
	assert.Equal(t, finishToolName, chat.opts[0].Tools[0].Name)
}

func TestPostMessageFinishesInterview(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInProgress)
	seedMessages(interviews, iv.ID, minMessagesToFinish-1)
	chat := &scriptedChat{results: []*service.ChatResult{{
		ToolCall: &service.ToolCall{
			Name:      finishToolName,
			Arguments: `{"feedback":"Сильный кандидат","positive":true}`,
		},
	}}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	messages, err := uc.PostMessage(context.Background(), iv.ID, "Это всё, что я хотел рассказать")
	require.NoError(t, err)

	// The finishing turn persists no assistant message.
	require.Len(t, messages, minMessagesToFinish)
	assert.Equal(t, model.MessageTypeUser, messages[len(messages)-1].Type)

	stored, _ := interviews.FindByID(iv.ID)
	assert.Equal(t, model.InterviewStateDone, stored.State)
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, "Сильный кандидат", *stored.Feedback)
	require.NotNil(t, stored.FeedbackPositive)
	assert.True(t, *stored.FeedbackPositive)
}

func TestPostMessageDeflectsEarlyFinishCall(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInProgress)
	seedMessages(interviews, iv.ID, 2)
	chat := &scriptedChat{results: []*service.ChatResult{{
		ToolCall: &service.ToolCall{
			Name:      finishToolName,
			Arguments: `{"feedback":"рано","positive":false}`,
		},
	}}}
	uc := NewInterviewUsecase(interviews, candidates, vacancies, chat)

	messages, err := uc.PostMessage(context.Background(), iv.ID, "привет")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, deflectFinish, messages[3].Text)

	stored, _ := interviews.FindByID(iv.ID)
	assert.Equal(t, model.InterviewStateInProgress, stored.State)
	assert.Nil(t, stored.Feedback)
}

func TestListMessagesHidesSystemPromptByDefault(t *testing.T) {
	interviews, candidates, vacancies, iv := interviewFixture(model.InterviewStateInProgress)
	seedMessages(interviews, iv.ID, 4)
	uc := NewInterviewUsecase(interviews, candidates, vacancies, &scriptedChat{})

	visible, err := uc.ListMessages(iv.ID, false)
	require.NoError(t, err)
	require.Len(t, visible, 3)
	for _, m := range visible {
		assert.NotEqual(t, model.MessageTypeSystem, m.Type)
	}

	all, err := uc.ListMessages(iv.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, model.MessageTypeSystem, all[0].Type)
}

func TestCreateRejectsUnknownCandidate(t *testing.T) {
	interviews, candidates, vacancies, _ := interviewFixture(model.InterviewStateInitialized)
	uc := NewInterviewUsecase(interviews, candidates, vacancies, &scriptedChat{})

	err := uc.Create(&model.Interview{CandidateID: uuid.New()})
	assert.True(t, apperror.IsNotFound(err))
}

func TestBuildSystemPromptFillsMissingFields(t *testing.T) {
	candidate := &model.Candidate{Name: "Анна"}
	prompt := buildSystemPrompt(candidate, nil)

	assert.Contains(t, prompt, "Имя: Анна")
	assert.Contains(t, prompt, "Позиция: "+unspecified)
	assert.Contains(t, prompt, "Вакансия не указана.")

	// Deterministic: same inputs, same prompt.
	assert.Equal(t, prompt, buildSystemPrompt(candidate, nil))
}
