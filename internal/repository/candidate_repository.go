package repository

import (
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CandidateStore is the persistence surface consumed by the usecase layer.
type CandidateStore interface {
	Create(candidate *model.Candidate) error
	Update(candidate *model.Candidate) error
	FindByID(id uuid.UUID) (*model.Candidate, error)
	List(page, pageSize int) ([]model.Candidate, int64, error)
	Delete(id uuid.UUID) error
}

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Create(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepository) Update(candidate *model.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *CandidateRepository) FindByID(id uuid.UUID) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *CandidateRepository) List(page, pageSize int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64
	if err := r.db.Model(&model.Candidate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Candidate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
