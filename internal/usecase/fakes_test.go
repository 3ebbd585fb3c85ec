package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type fakeCandidateStore struct {
	candidates map[uuid.UUID]*model.Candidate
}

func newFakeCandidateStore(candidates ...*model.Candidate) *fakeCandidateStore {
	s := &fakeCandidateStore{candidates: map[uuid.UUID]*model.Candidate{}}
	for _, c := range candidates {
		s.candidates[c.ID] = c
	}
	return s
}

func (s *fakeCandidateStore) Create(c *model.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.candidates[c.ID] = c
	return nil
}

func (s *fakeCandidateStore) Update(c *model.Candidate) error {
	s.candidates[c.ID] = c
	return nil
}

func (s *fakeCandidateStore) FindByID(id uuid.UUID) (*model.Candidate, error) {
	c, ok := s.candidates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *fakeCandidateStore) List(page, pageSize int) ([]model.Candidate, int64, error) {
	var all []model.Candidate
	for _, c := range s.candidates {
		all = append(all, *c)
	}
	return all, int64(len(all)), nil
}

func (s *fakeCandidateStore) Delete(id uuid.UUID) error {
	if _, ok := s.candidates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.candidates, id)
	return nil
}

type fakeVacancyStore struct {
	vacancies map[uuid.UUID]*model.Vacancy
}

func newFakeVacancyStore(vacancies ...*model.Vacancy) *fakeVacancyStore {
	s := &fakeVacancyStore{vacancies: map[uuid.UUID]*model.Vacancy{}}
	for _, v := range vacancies {
		s.vacancies[v.ID] = v
	}
	return s
}

func (s *fakeVacancyStore) Create(v *model.Vacancy) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.vacancies[v.ID] = v
	return nil
}

func (s *fakeVacancyStore) Update(v *model.Vacancy) error {
	s.vacancies[v.ID] = v
	return nil
}

func (s *fakeVacancyStore) FindByID(id uuid.UUID) (*model.Vacancy, error) {
	v, ok := s.vacancies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (s *fakeVacancyStore) List(page, pageSize int) ([]model.Vacancy, int64, error) {
	var all []model.Vacancy
	for _, v := range s.vacancies {
		all = append(all, *v)
	}
	return all, int64(len(all)), nil
}

func (s *fakeVacancyStore) Delete(id uuid.UUID) error {
	if _, ok := s.vacancies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.vacancies, id)
	return nil
}

type fakeNoteStore struct {
	notes map[uuid.UUID]*model.Note
}

func newFakeNoteStore(notes ...*model.Note) *fakeNoteStore {
	s := &fakeNoteStore{notes: map[uuid.UUID]*model.Note{}}
	for _, n := range notes {
		s.notes[n.ID] = n
	}
	return s
}

func (s *fakeNoteStore) Create(n *model.Note) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notes[n.ID] = n
	return nil
}

func (s *fakeNoteStore) Update(n *model.Note) error {
	s.notes[n.ID] = n
	return nil
}

func (s *fakeNoteStore) FindByID(id uuid.UUID) (*model.Note, error) {
	n, ok := s.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (s *fakeNoteStore) ListByVacancy(vacancyID uuid.UUID, limit, offset int) ([]model.Note, error) {
	var all []model.Note
	for _, n := range s.notes {
		if n.VacancyID == vacancyID {
			all = append(all, *n)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []model.Note{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakeNoteStore) Delete(id uuid.UUID) error {
	if _, ok := s.notes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.notes, id)
	return nil
}

type fakeInterviewStore struct {
	interviews map[uuid.UUID]*model.Interview
	messages   map[uuid.UUID][]model.InterviewMessage
}

func newFakeInterviewStore(interviews ...*model.Interview) *fakeInterviewStore {
	s := &fakeInterviewStore{
		interviews: map[uuid.UUID]*model.Interview{},
		messages:   map[uuid.UUID][]model.InterviewMessage{},
	}
	for _, iv := range interviews {
		s.interviews[iv.ID] = iv
	}
	return s
}

func (s *fakeInterviewStore) Create(iv *model.Interview) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	s.interviews[iv.ID] = iv
	return nil
}

func (s *fakeInterviewStore) Update(iv *model.Interview) error {
	s.interviews[iv.ID] = iv
	return nil
}

func (s *fakeInterviewStore) FindByID(id uuid.UUID) (*model.Interview, error) {
	iv, ok := s.interviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *iv
	return &copied, nil
}

func (s *fakeInterviewStore) List() ([]model.Interview, error) {
	var all []model.Interview
	for _, iv := range s.interviews {
		all = append(all, *iv)
	}
	return all, nil
}

func (s *fakeInterviewStore) ListByCandidate(candidateID uuid.UUID) ([]model.Interview, error) {
	var all []model.Interview
	for _, iv := range s.interviews {
		if iv.CandidateID == candidateID {
			all = append(all, *iv)
		}
	}
	return all, nil
}

func (s *fakeInterviewStore) Delete(id uuid.UUID) error {
	if _, ok := s.interviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.interviews, id)
	delete(s.messages, id)
	return nil
}

func (s *fakeInterviewStore) ListMessages(interviewID uuid.UUID) ([]model.InterviewMessage, error) {
	messages := append([]model.InterviewMessage{}, s.messages[interviewID]...)
	sort.Slice(messages, func(i, j int) bool { return messages[i].Index < messages[j].Index })
	return messages, nil
}

func (s *fakeInterviewStore) CountMessages(interviewID uuid.UUID) (int, error) {
	return len(s.messages[interviewID]), nil
}

func (s *fakeInterviewStore) AppendMessage(m *model.InterviewMessage) error {
	s.messages[m.InterviewID] = append(s.messages[m.InterviewID], *m)
	return nil
}

func (s *fakeInterviewStore) Locked(id uuid.UUID, fn func(tx repository.InterviewStore, iv *model.Interview) error) error {
	iv, ok := s.interviews[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *iv
	return fn(s, &copied)
}

type fakeEmbeddingStore struct {
	candidateVectors map[uuid.UUID]pgvector.Vector
	vacancyVectors   map[uuid.UUID]pgvector.Vector

	nearestCandidates []repository.SimilarityHit
	nearestVacancies  []repository.SimilarityHit
}

func newFakeEmbeddingStore() *fakeEmbeddingStore {
	return &fakeEmbeddingStore{
		candidateVectors: map[uuid.UUID]pgvector.Vector{},
		vacancyVectors:   map[uuid.UUID]pgvector.Vector{},
	}
}

func (s *fakeEmbeddingStore) FindCandidateEmbedding(candidateID uuid.UUID) (*model.CandidateEmbedding, error) {
	vec, ok := s.candidateVectors[candidateID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.CandidateEmbedding{CandidateID: candidateID, Embedding: vec}, nil
}

func (s *fakeEmbeddingStore) FindVacancyEmbedding(vacancyID uuid.UUID) (*model.VacancyEmbedding, error) {
	vec, ok := s.vacancyVectors[vacancyID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.VacancyEmbedding{VacancyID: vacancyID, Embedding: vec}, nil
}

func (s *fakeEmbeddingStore) ReplaceCandidateEmbedding(e *model.CandidateEmbedding) error {
	s.candidateVectors[e.CandidateID] = e.Embedding
	return nil
}

func (s *fakeEmbeddingStore) ReplaceVacancyEmbedding(e *model.VacancyEmbedding) error {
	s.vacancyVectors[e.VacancyID] = e.Embedding
	return nil
}

func (s *fakeEmbeddingStore) NearestCandidates(vec pgvector.Vector, limit int) ([]repository.SimilarityHit, error) {
	return s.nearestCandidates, nil
}

func (s *fakeEmbeddingStore) NearestVacancies(vec pgvector.Vector, limit int) ([]repository.SimilarityHit, error) {
	return s.nearestVacancies, nil
}

// scriptedChat replays canned chat results in order and records the options
// of every call.
type scriptedChat struct {
	results []*service.ChatResult
	errs    []error
	opts    []service.ChatOptions
}

func (f *scriptedChat) Chat(_ context.Context, _ []service.ChatMessage, opts service.ChatOptions) (*service.ChatResult, error) {
	f.opts = append(f.opts, opts)
	i := len(f.opts) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return &service.ChatResult{Text: "Понятно, расскажите подробнее."}, nil
}

type fixedSkills struct {
	match service.SkillMatch
}

func (f *fixedSkills) Match(_ context.Context, _, _ []string) service.SkillMatch {
	return f.match
}
