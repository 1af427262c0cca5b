package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/jobq"
	"github.com/codearena/backend/logger"
	"github.com/codearena/backend/question"
	"github.com/codearena/backend/status"
	"github.com/google/uuid"
)

// DispatchSrvc validates and normalizes job requests, hands them to the
// queue client and seeds the status store. It never waits for workers;
// clients poll GetStatus.
type DispatchSrvc struct {
	logger *slog.Logger

	queue     *jobq.Client
	statuses  *status.Store
	questions *question.QuestionSrvc
	battles   *battle.BattleSrvc
}

func NewDispatchSrvc(
	queue *jobq.Client,
	statuses *status.Store,
	questions *question.QuestionSrvc,
	battles *battle.BattleSrvc,
) *DispatchSrvc {
	return &DispatchSrvc{
		logger:    slog.Default().With("module", "dispatch"),
		queue:     queue,
		statuses:  statuses,
		questions: questions,
		battles:   battles,
	}
}

type SubmitRunParams struct {
	Language string
	Code     string
	Input    *string
	Timeout  *int
}

// SubmitRun enqueues a free-form run and returns its job id. Enqueue,
// status seed and response are best-effort sequential: when the status
// seed fails after a successful enqueue the job still executes, and the
// status key appears once the worker writes its result.
func (s *DispatchSrvc) SubmitRun(ctx context.Context, p SubmitRunParams) (string, error) {
	if p.Language == "" {
		return "", ErrLanguageMissing()
	}
	if !isSupportedLanguage(p.Language) {
		return "", ErrLanguageNotSupported()
	}
	if p.Code == "" {
		return "", ErrCodeMissing()
	}

	jobID, err := NewJobID()
	if err != nil {
		return "", err
	}

	job := RunJob{
		Language:   p.Language,
		Code:       p.Code,
		FolderName: jobID,
		Input:      "",
		TimeoutMs:  defaultTimeoutMs,
	}
	if p.Input != nil {
		job.Input = *p.Input
	}
	if p.Timeout != nil {
		job.TimeoutMs = *p.Timeout
	}

	if err := s.enqueueAndSeed(ctx, jobq.SingleExecutionQueue, jobID, job); err != nil {
		return "", err
	}
	return jobID, nil
}

type SubmitQuestionRunParams struct {
	QuestionID uuid.UUID
	Language   string
	Code       string
	TestInputs []string
	Timeout    *int
}

// SubmitQuestionRun enqueues a run against caller-supplied test inputs,
// bundling the question's reference solution so the worker can diff
// outputs against it.
func (s *DispatchSrvc) SubmitQuestionRun(ctx context.Context, p SubmitQuestionRunParams) (string, error) {
	if p.QuestionID == uuid.Nil {
		return "", ErrQuestionIdMissing()
	}
	if p.Language == "" {
		return "", ErrLanguageMissing()
	}
	if !isSupportedLanguage(p.Language) {
		return "", ErrLanguageNotSupported()
	}
	if p.Code == "" {
		return "", ErrCodeMissing()
	}

	q, err := s.questions.Get(ctx, p.QuestionID)
	if err != nil {
		return "", err
	}
	solution := q.PrimarySolution()
	if solution == nil {
		return "", ErrQuestionNotReady()
	}

	jobID, err := NewJobID()
	if err != nil {
		return "", err
	}

	testInputs := p.TestInputs
	if len(testInputs) == 0 {
		testInputs = []string{""}
	}

	job := QuestionRunJob{
		InputCode:  InputCode{Language: p.Language, Code: p.Code},
		FolderName: jobID,
		TestInputs: testInputs,
		TimeoutMs:  defaultTimeoutMs,
		Solution:   RefSolution{Language: solution.Language, Code: solution.Code},
	}
	if p.Timeout != nil {
		job.TimeoutMs = *p.Timeout
	}

	if err := s.enqueueAndSeed(ctx, jobq.MultiExecutionQueue, jobID, job); err != nil {
		return "", err
	}
	return jobID, nil
}

type SubmitQuestionSubmitParams struct {
	QuestionID uuid.UUID
	BattleID   uuid.UUID
	Language   string
	Code       string
	Timeout    *int
}

// SubmitQuestionSubmit is the scored variant: the question's own hidden
// test cases are used (caller-supplied inputs are ignored) and a
// submission record keyed by the job id is persisted so the battle
// service can score it later.
func (s *DispatchSrvc) SubmitQuestionSubmit(ctx context.Context, p SubmitQuestionSubmitParams, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized()
	}
	if p.QuestionID == uuid.Nil {
		return "", ErrQuestionIdMissing()
	}
	if p.BattleID == uuid.Nil {
		return "", ErrBattleIdMissing()
	}
	if p.Language == "" {
		return "", ErrLanguageMissing()
	}
	if !isSupportedLanguage(p.Language) {
		return "", ErrLanguageNotSupported()
	}
	if p.Code == "" {
		return "", ErrCodeMissing()
	}

	q, err := s.questions.Get(ctx, p.QuestionID)
	if err != nil {
		return "", err
	}
	solution := q.PrimarySolution()
	if solution == nil || len(q.TestCases) == 0 {
		return "", ErrQuestionNotReady()
	}

	jobID, err := NewJobID()
	if err != nil {
		return "", err
	}

	testInputs := make([]string, len(q.TestCases))
	for i, tc := range q.TestCases {
		testInputs[i] = tc.Input
	}

	job := QuestionRunJob{
		InputCode:  InputCode{Language: p.Language, Code: p.Code},
		FolderName: jobID,
		TestInputs: testInputs,
		TimeoutMs:  defaultTimeoutMs,
		Solution:   RefSolution{Language: solution.Language, Code: solution.Code},
	}
	if p.Timeout != nil {
		job.TimeoutMs = *p.Timeout
	}

	if err := s.enqueueAndSeed(ctx, jobq.MultiExecutionQueue, jobID, job); err != nil {
		return "", err
	}

	sub := &battle.Submission{
		ID:         jobID,
		BattleID:   p.BattleID,
		QuestionID: p.QuestionID,
		UserID:     userID,
		CreatedAt:  timeNow(),
		Score:      "0",
		Status:     status.Queued,
	}
	if err := s.battles.RecordSubmission(ctx, sub); err != nil {
		return "", err
	}

	return jobID, nil
}

// GetStatus is a non-blocking read-through to the status store. The
// returned pointer is nil when no status exists for the job.
func (s *DispatchSrvc) GetStatus(ctx context.Context, jobID string) (*string, error) {
	val, found, err := s.statuses.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &val, nil
}

// enqueueAndSeed pushes the job payload and seeds its "Queued" status. A
// seed failure after a successful enqueue is only logged: the accepted
// inconsistency window until the worker overwrites the key.
func (s *DispatchSrvc) enqueueAndSeed(ctx context.Context, queueName, jobID string, job any) error {
	ctx = logger.WithJobID(logger.WithLogger(ctx, s.logger), jobID)
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := s.queue.Enqueue(ctx, queueName, payload); err != nil {
		return err
	}
	if err := s.statuses.Set(ctx, jobID, status.Queued); err != nil {
		log.Warn("failed to seed job status after enqueue", "queue", queueName, "error", err)
		return nil
	}
	log.Info("job enqueued", "queue", queueName)
	return nil
}
