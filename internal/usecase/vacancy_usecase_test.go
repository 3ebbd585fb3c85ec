package usecase

import (
	"testing"
	"time"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteFixture() (*VacancyUsecase, *fakeNoteStore, *model.Vacancy) {
	vacancy := &model.Vacancy{
		ID:    uuid.New(),
		Title: "Backend разработчик",
	}
	notes := newFakeNoteStore()
	embeddingUC := NewEmbeddingUsecase(newFakeEmbeddingStore(), nil)
	uc := NewVacancyUsecase(newFakeVacancyStore(vacancy), notes, embeddingUC, &scriptedChat{})
	return uc, notes, vacancy
}

func TestAddNoteUnknownVacancy(t *testing.T) {
	uc, _, _ := noteFixture()

	_, err := uc.AddNote(uuid.New(), "интересный кандидатский пул")
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddNotePersists(t *testing.T) {
	uc, notes, vacancy := noteFixture()

	note, err := uc.AddNote(vacancy.ID, "обсудили вилку с нанимающим менеджером")
	require.NoError(t, err)
	assert.Equal(t, vacancy.ID, note.VacancyID)
	assert.Equal(t, "обсудили вилку с нанимающим менеджером", note.Text)

	stored, err := notes.FindByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Text, stored.Text)
}

func TestListNotesUnknownVacancy(t *testing.T) {
	uc, _, _ := noteFixture()

	_, err := uc.ListNotes(uuid.New(), 10, 0)
	assert.True(t, apperror.IsNotFound(err))
}

func TestListNotesNewestFirstWithPaging(t *testing.T) {
	uc, notes, vacancy := noteFixture()
	base := time.Now()
	for i := 0; i < 3; i++ {
		_ = notes.Create(&model.Note{
			VacancyID: vacancy.ID,
			Text:      []string{"первая", "вторая", "третья"}[i],
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	listed, err := uc.ListNotes(vacancy.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "третья", listed[0].Text)
	assert.Equal(t, "вторая", listed[1].Text)

	rest, err := uc.ListNotes(vacancy.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "первая", rest[0].Text)
}

func TestUpdateNote(t *testing.T) {
	uc, _, vacancy := noteFixture()
	note, err := uc.AddNote(vacancy.ID, "черновик")
	require.NoError(t, err)

	updated, err := uc.UpdateNote(note.ID, "финальная версия")
	require.NoError(t, err)
	assert.Equal(t, "финальная версия", updated.Text)

	_, err = uc.UpdateNote(uuid.New(), "нет такой заметки")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteNote(t *testing.T) {
	uc, notes, vacancy := noteFixture()
	note, err := uc.AddNote(vacancy.ID, "удалить меня")
	require.NoError(t, err)

	require.NoError(t, uc.DeleteNote(note.ID))
	_, err = notes.FindByID(note.ID)
	assert.Error(t, err)

	assert.True(t, apperror.IsNotFound(uc.DeleteNote(note.ID)))
}
