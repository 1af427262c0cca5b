package question

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TestCase is one hidden input/answer pair used to judge submissions.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// Solution is a canonical reference implementation that workers diff
// submitted code against.
type Solution struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type Question struct {
	ID          uuid.UUID
	Title       string
	Description string
	Points      float64
	TestCases   []TestCase
	Solutions   []Solution
	CreatedAt   time.Time
}

// PrimarySolution returns the reference solution bundled into question-run
// job payloads.
func (q *Question) PrimarySolution() *Solution {
	if len(q.Solutions) == 0 {
		return nil
	}
	return &q.Solutions[0]
}

// Repo is the question document store. Get returns (nil, nil) when the
// question does not exist.
type Repo interface {
	Save(ctx context.Context, q *Question) error
	Get(ctx context.Context, id uuid.UUID) (*Question, error)
	List(ctx context.Context) ([]Question, error)
}

type QuestionSrvc struct {
	logger *slog.Logger
	repo   Repo
}

func NewQuestionSrvc(repo Repo) *QuestionSrvc {
	return &QuestionSrvc{
		logger: slog.Default().With("module", "question"),
		repo:   repo,
	}
}

type CreateQuestionParams struct {
	Title       string
	Description string
	Points      float64
	TestCases   []TestCase
	Solutions   []Solution
}

func (s *QuestionSrvc) Create(ctx context.Context, p CreateQuestionParams) (*Question, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrTitleMissing()
	}
	if p.Points <= 0 {
		return nil, ErrInvalidPoints()
	}

	q := &Question{
		ID:          uuid.New(),
		Title:       p.Title,
		Description: p.Description,
		Points:      p.Points,
		TestCases:   p.TestCases,
		Solutions:   p.Solutions,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	s.logger.Info("question created", "question_id", q.ID)
	return q, nil
}

func (s *QuestionSrvc) Get(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound()
	}
	return q, nil
}

func (s *QuestionSrvc) List(ctx context.Context) ([]Question, error) {
	qs, err := s.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	return qs, nil
}

// PickRandom samples n distinct questions from the pool without
// replacement.
func (s *QuestionSrvc) PickRandom(ctx context.Context, n int) ([]Question, error) {
	pool, err := s.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	if len(pool) < n {
		return nil, ErrNotEnoughQuestions(n, len(pool))
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:n], nil
}
