package store

import (
	"context"
	"slices"
	"sync"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// MemoryStore keeps questions and answers in process memory. Each collection
// has its own lock, so answer writes never block question reads.
type MemoryStore struct {
	qmu       sync.RWMutex
	questions map[domain.QuestionID]domain.Question
	qorder    []domain.QuestionID
	nextQID   domain.QuestionID

	amu     sync.RWMutex
	answers map[domain.AnswerID]domain.Answer
	aorder  []domain.AnswerID
	nextAID domain.AnswerID
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions: make(map[domain.QuestionID]domain.Question),
		answers:   make(map[domain.AnswerID]domain.Answer),
	}
}

var _ Store = (*MemoryStore)(nil)

// GetQuestions returns questions in insertion order.
func (s *MemoryStore) GetQuestions(ctx context.Context, limit *int, offset int) (out []domain.Question, err error) {
	_, done := track(ctx, opGetQuestions, backendMemory)
	defer func() { done(err) }()

	s.qmu.RLock()
	defer s.qmu.RUnlock()

	lo := min(max(offset, 0), len(s.qorder))
	hi := len(s.qorder)
	if limit != nil && *limit < hi-lo {
		hi = lo + max(*limit, 0)
	}
	out = make([]domain.Question, 0, hi-lo)
	for _, id := range s.qorder[lo:hi] {
		out = append(out, cloneQuestion(s.questions[id]))
	}
	return out, nil
}

// GetQuestion returns the question stored under id.
func (s *MemoryStore) GetQuestion(ctx context.Context, id domain.QuestionID) (q domain.Question, err error) {
	_, done := track(ctx, opGetQuestion, backendMemory)
	defer func() { done(err) }()

	s.qmu.RLock()
	defer s.qmu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return cloneQuestion(q), nil
}

// CountQuestions returns the number of stored questions.
func (s *MemoryStore) CountQuestions(ctx context.Context) (n int64, err error) {
	_, done := track(ctx, opCountQuestions, backendMemory)
	defer func() { done(err) }()

	s.qmu.RLock()
	defer s.qmu.RUnlock()
	return int64(len(s.qorder)), nil
}

// AddQuestion stores nq under the next id of the question sequence.
func (s *MemoryStore) AddQuestion(ctx context.Context, nq domain.NewQuestion) (q domain.Question, err error) {
	_, done := track(ctx, opAddQuestion, backendMemory)
	defer func() { done(err) }()

	s.qmu.Lock()
	defer s.qmu.Unlock()

	s.nextQID++
	q = domain.Question{
		ID:      s.nextQID,
		Title:   nq.Title,
		Content: nq.Content,
		Tags:    slices.Clone(nq.Tags),
	}
	s.questions[q.ID] = q
	s.qorder = append(s.qorder, q.ID)
	return cloneQuestion(q), nil
}

// UpdateQuestion replaces the question stored under id, keeping its position.
func (s *MemoryStore) UpdateQuestion(ctx context.Context, q domain.Question, id domain.QuestionID) (_ domain.Question, err error) {
	_, done := track(ctx, opUpdateQuestion, backendMemory)
	defer func() { done(err) }()

	s.qmu.Lock()
	defer s.qmu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	q.ID = id
	q.Tags = slices.Clone(q.Tags)
	s.questions[id] = q
	return cloneQuestion(q), nil
}

// DeleteQuestion removes the question stored under id.
func (s *MemoryStore) DeleteQuestion(ctx context.Context, id domain.QuestionID) (err error) {
	_, done := track(ctx, opDeleteQuestion, backendMemory)
	defer func() { done(err) }()

	s.qmu.Lock()
	defer s.qmu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(s.questions, id)
	if i := slices.Index(s.qorder, id); i >= 0 {
		s.qorder = slices.Delete(s.qorder, i, i+1)
	}
	return nil
}

// AddAnswer stores na under the next id of the answer sequence. The id is
// drawn and the answer inserted under the same lock.
func (s *MemoryStore) AddAnswer(ctx context.Context, na domain.NewAnswer) (a domain.Answer, err error) {
	_, done := track(ctx, opAddAnswer, backendMemory)
	defer func() { done(err) }()

	s.amu.Lock()
	defer s.amu.Unlock()

	s.nextAID++
	a = domain.Answer{
		ID:         s.nextAID,
		Content:    na.Content,
		QuestionID: na.QuestionID,
	}
	s.answers[a.ID] = a
	s.aorder = append(s.aorder, a.ID)
	return a, nil
}

// GetAnswers lists answers referencing questionID in insertion order.
func (s *MemoryStore) GetAnswers(ctx context.Context, questionID domain.QuestionID) (out []domain.Answer, err error) {
	_, done := track(ctx, opGetAnswers, backendMemory)
	defer func() { done(err) }()

	s.amu.RLock()
	defer s.amu.RUnlock()

	out = make([]domain.Answer, 0)
	for _, id := range s.aorder {
		if a := s.answers[id]; a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

func cloneQuestion(q domain.Question) domain.Question {
	q.Tags = slices.Clone(q.Tags)
	return q
}
