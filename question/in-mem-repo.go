package question

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type InMemQuestionRepo struct {
	lock      sync.Mutex
	questions map[uuid.UUID]Question
}

func NewInMemQuestionRepo() *InMemQuestionRepo {
	return &InMemQuestionRepo{
		questions: make(map[uuid.UUID]Question),
	}
}

func (m *InMemQuestionRepo) Save(ctx context.Context, q *Question) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.questions[q.ID] = *q
	return nil
}

func (m *InMemQuestionRepo) Get(ctx context.Context, id uuid.UUID) (*Question, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (m *InMemQuestionRepo) List(ctx context.Context) ([]Question, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	qs := make([]Question, 0, len(m.questions))
	for _, q := range m.questions {
		qs = append(qs, q)
	}
	return qs, nil
}
