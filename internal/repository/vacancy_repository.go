package repository

import (
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VacancyStore interface {
	Create(vacancy *model.Vacancy) error
	Update(vacancy *model.Vacancy) error
	FindByID(id uuid.UUID) (*model.Vacancy, error)
	List(page, pageSize int) ([]model.Vacancy, int64, error)
	Delete(id uuid.UUID) error
}

type VacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) *VacancyRepository {
	return &VacancyRepository{db}
}

func (r *VacancyRepository) Create(vacancy *model.Vacancy) error {
	return r.db.Create(vacancy).Error
}

func (r *VacancyRepository) Update(vacancy *model.Vacancy) error {
	return r.db.Save(vacancy).Error
}

func (r *VacancyRepository) FindByID(id uuid.UUID) (*model.Vacancy, error) {
	var v model.Vacancy
	err := r.db.First(&v, "id = ?", id).Error
	return &v, err
}

func (r *VacancyRepository) List(page, pageSize int) ([]model.Vacancy, int64, error) {
	var vacancies []model.Vacancy
	var total int64
	if err := r.db.Model(&model.Vacancy{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&vacancies).Error
	return vacancies, total, err
}

func (r *VacancyRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Vacancy{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
