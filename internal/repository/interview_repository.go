package repository

import (
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterviewStore is the persistence surface consumed by the usecase layer.
// Locked hands the callback a store bound to the surrounding transaction.
type InterviewStore interface {
	Create(interview *model.Interview) error
	Update(interview *model.Interview) error
	FindByID(id uuid.UUID) (*model.Interview, error)
	List() ([]model.Interview, error)
	ListByCandidate(candidateID uuid.UUID) ([]model.Interview, error)
	Delete(id uuid.UUID) error
	ListMessages(interviewID uuid.UUID) ([]model.InterviewMessage, error)
	CountMessages(interviewID uuid.UUID) (int, error)
	AppendMessage(message *model.InterviewMessage) error
	Locked(id uuid.UUID, fn func(tx InterviewStore, iv *model.Interview) error) error
}

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *InterviewRepository) Update(interview *model.Interview) error {
	return r.db.Save(interview).Error
}

func (r *InterviewRepository) FindByID(id uuid.UUID) (*model.Interview, error) {
	var iv model.Interview
	err := r.db.First(&iv, "id = ?", id).Error
	return &iv, err
}

func (r *InterviewRepository) List() ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Order("created_at DESC").Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) ListByCandidate(candidateID uuid.UUID) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Interview{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InterviewRepository) ListMessages(interviewID uuid.UUID) ([]model.InterviewMessage, error) {
	var messages []model.InterviewMessage
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("index ASC").
		Find(&messages).Error
	return messages, err
}

func (r *InterviewRepository) CountMessages(interviewID uuid.UUID) (int, error) {
	var count int64
	err := r.db.Model(&model.InterviewMessage{}).
		Where("interview_id = ?", interviewID).
		Count(&count).Error
	return int(count), err
}

func (r *InterviewRepository) AppendMessage(message *model.InterviewMessage) error {
	return r.db.Create(message).Error
}

// Locked runs fn inside a transaction holding a row lock on the interview,
// serializing concurrent turns on the same interview so message indices stay
// gapless and state transitions stay monotonic.
func (r *InterviewRepository) Locked(id uuid.UUID, fn func(tx InterviewStore, iv *model.Interview) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var iv model.Interview
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&iv, "id = ?", id).Error
		if err != nil {
			return err
		}
		return fn(&InterviewRepository{db: tx}, &iv)
	})
}
