package repository

import (
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteStore interface {
	Create(note *model.Note) error
	Update(note *model.Note) error
	FindByID(id uuid.UUID) (*model.Note, error)
	ListByVacancy(vacancyID uuid.UUID, limit, offset int) ([]model.Note, error)
	Delete(id uuid.UUID) error
}

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	return r.db.Create(note).Error
}

func (r *NoteRepository) Update(note *model.Note) error {
	return r.db.Save(note).Error
}

func (r *NoteRepository) FindByID(id uuid.UUID) (*model.Note, error) {
	var note model.Note
	err := r.db.First(&note, "id = ?", id).Error
	return &note, err
}

func (r *NoteRepository) ListByVacancy(vacancyID uuid.UUID, limit, offset int) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.
		Where("vacancy_id = ?", vacancyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Note{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
