package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/jobq"
	"github.com/codearena/backend/question"
	"github.com/codearena/backend/srvcerr"
	"github.com/codearena/backend/status"
)

type sentMessage struct {
	queueURL string
	body     string
}

type captureSqs struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (c *captureSqs) CreateQueue(ctx context.Context, params *sqs.CreateQueueInput, optFns ...func(*sqs.Options)) (*sqs.CreateQueueOutput, error) {
	url := fmt.Sprintf("https://sqs.test/%s", *params.QueueName)
	return &sqs.CreateQueueOutput{QueueUrl: aws.String(url)}, nil
}

func (c *captureSqs) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, sentMessage{
		queueURL: *params.QueueUrl,
		body:     *params.MessageBody,
	})
	return &sqs.SendMessageOutput{}, nil
}

func (c *captureSqs) messages() []sentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}

type dispatchFixture struct {
	srvc       *DispatchSrvc
	sqs        *captureSqs
	statuses   *status.Store
	battleRepo battle.Repo
	questions  *question.QuestionSrvc
}

func setupDispatchSrvc(t *testing.T) *dispatchFixture {
	t.Helper()

	fake := &captureSqs{}
	queue := jobq.NewCustomClient(slog.Default(), func(ctx context.Context) (jobq.SqsAPI, error) {
		return fake, nil
	}, 3)

	mr := miniredis.RunT(t)
	statuses := status.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	questions := question.NewQuestionSrvc(question.NewInMemQuestionRepo())
	battleRepo := battle.NewInMemBattleRepo()
	battles := battle.NewBattleSrvc(battleRepo, questions, statuses)

	return &dispatchFixture{
		srvc:       NewDispatchSrvc(queue, statuses, questions, battles),
		sqs:        fake,
		statuses:   statuses,
		battleRepo: battleRepo,
		questions:  questions,
	}
}

func (f *dispatchFixture) createQuestion(t *testing.T, solutions []question.Solution) *question.Question {
	t.Helper()
	q, err := f.questions.Create(context.Background(), question.CreateQuestionParams{
		Title:  "reverse a string",
		Points: 10,
		TestCases: []question.TestCase{
			{Input: "abc", ExpectedOutput: "cba"},
			{Input: "xy", ExpectedOutput: "yx"},
		},
		Solutions: solutions,
	})
	require.NoError(t, err)
	return q
}

func assertDispatchErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var se *srvcerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, code, se.ErrorCode())
}

var jobIDPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestSubmitRun(t *testing.T) {
	f := setupDispatchSrvc(t)
	ctx := context.Background()

	jobID, err := f.srvc.SubmitRun(ctx, SubmitRunParams{
		Language: "py",
		Code:     "print(input())",
	})
	require.NoError(t, err)
	assert.Regexp(t, jobIDPattern, jobID)

	msgs := f.sqs.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].queueURL, jobq.SingleExecutionQueue)

	var job RunJob
	require.NoError(t, json.Unmarshal([]byte(msgs[0].body), &job))
	assert.Equal(t, "py", job.Language)
	assert.Equal(t, jobID, job.FolderName)
	assert.Equal(t, "", job.Input)
	assert.Equal(t, defaultTimeoutMs, job.TimeoutMs)

	// status is readable immediately after submit
	val, found, err := f.statuses.Get(ctx, jobID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, status.Queued, val)
}

func TestSubmitRunOverrides(t *testing.T) {
	f := setupDispatchSrvc(t)

	input := "5\n"
	timeout := 3000
	_, err := f.srvc.SubmitRun(context.Background(), SubmitRunParams{
		Language: "cpp",
		Code:     "int main(){}",
		Input:    &input,
		Timeout:  &timeout,
	})
	require.NoError(t, err)

	var job RunJob
	msgs := f.sqs.messages()
	require.Len(t, msgs, 1)
	require.NoError(t, json.Unmarshal([]byte(msgs[0].body), &job))
	assert.Equal(t, "5\n", job.Input)
	assert.Equal(t, 3000, job.TimeoutMs)
}

func TestSubmitRunValidation(t *testing.T) {
	f := setupDispatchSrvc(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		params  SubmitRunParams
		errCode string
	}{
		{"missing language", SubmitRunParams{Code: "x"}, ErrCodeLanguageMissing},
		{"unsupported language", SubmitRunParams{Language: "cobol", Code: "x"}, ErrCodeLanguageNotSupported},
		{"missing code", SubmitRunParams{Language: "py"}, ErrCodeCodeMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.srvc.SubmitRun(ctx, tt.params)
			assertDispatchErrCode(t, err, tt.errCode)
		})
	}

	// rejected requests never reach the queue
	assert.Empty(t, f.sqs.messages())
}

func TestSubmitQuestionRun(t *testing.T) {
	f := setupDispatchSrvc(t)
	ctx := context.Background()
	q := f.createQuestion(t, []question.Solution{{Language: "py", Code: "print(input()[::-1])"}})

	jobID, err := f.srvc.SubmitQuestionRun(ctx, SubmitQuestionRunParams{
		QuestionID: q.ID,
		Language:   "js",
		Code:       "console.log('x')",
		TestInputs: []string{"abc", "xy"},
	})
	require.NoError(t, err)
	assert.Regexp(t, jobIDPattern, jobID)

	msgs := f.sqs.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].queueURL, jobq.MultiExecutionQueue)

	var job QuestionRunJob
	require.NoError(t, json.Unmarshal([]byte(msgs[0].body), &job))
	assert.Equal(t, []string{"abc", "xy"}, job.TestInputs)
	assert.Equal(t, "js", job.InputCode.Language)
	assert.Equal(t, "py", job.Solution.Language)
	assert.Equal(t, "print(input()[::-1])", job.Solution.Code)
}

func TestSubmitQuestionRunDefaultsToSingleEmptyInput(t *testing.T) {
	f := setupDispatchSrvc(t)
	q := f.createQuestion(t, []question.Solution{{Language: "py", Code: "pass"}})

	_, err := f.srvc.SubmitQuestionRun(context.Background(), SubmitQuestionRunParams{
		QuestionID: q.ID,
		Language:   "py",
		Code:       "pass",
	})
	require.NoError(t, err)

	var job QuestionRunJob
	msgs := f.sqs.messages()
	require.Len(t, msgs, 1)
	require.NoError(t, json.Unmarshal([]byte(msgs[0].body), &job))
	assert.Equal(t, []string{""}, job.TestInputs)
}

func TestSubmitQuestionRunUnknownQuestion(t *testing.T) {
	f := setupDispatchSrvc(t)

	_, err := f.srvc.SubmitQuestionRun(context.Background(), SubmitQuestionRunParams{
		QuestionID: uuid.New(),
		Language:   "py",
		Code:       "pass",
	})
	assertDispatchErrCode(t, err, question.ErrCodeQuestionNotFound)
}

func TestSubmitQuestionRunNoSolution(t *testing.T) {
	f := setupDispatchSrvc(t)
	q := f.createQuestion(t, nil)

	_, err := f.srvc.SubmitQuestionRun(context.Background(), SubmitQuestionRunParams{
		QuestionID: q.ID,
		Language:   "py",
		Code:       "pass",
	})
	assertDispatchErrCode(t, err, ErrCodeQuestionNotReady)
}

func TestSubmitQuestionSubmit(t *testing.T) {
	f := setupDispatchSrvc(t)
	ctx := context.Background()
	q := f.createQuestion(t, []question.Solution{{Language: "py", Code: "print(input()[::-1])"}})
	battleID := uuid.New()

	jobID, err := f.srvc.SubmitQuestionSubmit(ctx, SubmitQuestionSubmitParams{
		QuestionID: q.ID,
		BattleID:   battleID,
		Language:   "py",
		Code:       "print(input()[::-1])",
	}, "user-1")
	require.NoError(t, err)

	// hidden test inputs come from the question, not the caller
	var job QuestionRunJob
	msgs := f.sqs.messages()
	require.Len(t, msgs, 1)
	require.NoError(t, json.Unmarshal([]byte(msgs[0].body), &job))
	assert.Equal(t, []string{"abc", "xy"}, job.TestInputs)

	sub, err := f.battleRepo.GetSubmission(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, battleID, sub.BattleID)
	assert.Equal(t, q.ID, sub.QuestionID)
	assert.Equal(t, "user-1", sub.UserID)
	assert.Equal(t, "0", sub.Score)
	assert.Equal(t, status.Queued, sub.Status)
}

func TestSubmitQuestionSubmitRequiresUser(t *testing.T) {
	f := setupDispatchSrvc(t)

	_, err := f.srvc.SubmitQuestionSubmit(context.Background(), SubmitQuestionSubmitParams{
		QuestionID: uuid.New(),
		BattleID:   uuid.New(),
		Language:   "py",
		Code:       "pass",
	}, "")
	assertDispatchErrCode(t, err, ErrCodeUnauthorized)
	assert.Empty(t, f.sqs.messages())
}

func TestSubmitQuestionSubmitRequiresBattle(t *testing.T) {
	f := setupDispatchSrvc(t)

	_, err := f.srvc.SubmitQuestionSubmit(context.Background(), SubmitQuestionSubmitParams{
		QuestionID: uuid.New(),
		Language:   "py",
		Code:       "pass",
	}, "user-1")
	assertDispatchErrCode(t, err, ErrCodeBattleIdMissing)
}

func TestGetStatus(t *testing.T) {
	f := setupDispatchSrvc(t)
	ctx := context.Background()

	val, err := f.srvc.GetStatus(ctx, "unknown-job")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, f.statuses.Set(ctx, "job-7", `["Success"]`))
	val, err = f.srvc.GetStatus(ctx, "job-7")
	require.NoError(t, err)
	require.NotNil(t, val)
	assert.Equal(t, `["Success"]`, *val)
}

func TestJobIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewJobID()
		require.NoError(t, err)
		assert.Regexp(t, jobIDPattern, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
