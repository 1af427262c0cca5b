package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log/slog"

	"github.com/codearena/backend/auth"
	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
	"github.com/codearena/backend/jobq"
	"github.com/codearena/backend/question"
	"github.com/codearena/backend/status"
)

var testJwtKey = []byte("http-test-key")

type noopSqs struct{}

func (noopSqs) CreateQueue(ctx context.Context, params *sqs.CreateQueueInput, optFns ...func(*sqs.Options)) (*sqs.CreateQueueOutput, error) {
	url := "https://sqs.test/" + *params.QueueName
	return &sqs.CreateQueueOutput{QueueUrl: aws.String(url)}, nil
}

func (noopSqs) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	return &sqs.SendMessageOutput{}, nil
}

func setupServer(t *testing.T) (*HttpServer, *status.Store) {
	t.Helper()

	queue := jobq.NewCustomClient(slog.Default(), func(ctx context.Context) (jobq.SqsAPI, error) {
		return noopSqs{}, nil
	}, 3)

	mr := miniredis.RunT(t)
	statuses := status.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	questionSrvc := question.NewQuestionSrvc(question.NewInMemQuestionRepo())
	for i := 0; i < 3; i++ {
		_, err := questionSrvc.Create(context.Background(), question.CreateQuestionParams{
			Title:     fmt.Sprintf("question %d", i),
			Points:    10,
			TestCases: []question.TestCase{{Input: "1", ExpectedOutput: "1"}},
			Solutions: []question.Solution{{Language: "py", Code: "print(input())"}},
		})
		require.NoError(t, err)
	}

	battleSrvc := battle.NewBattleSrvc(battle.NewInMemBattleRepo(), questionSrvc, statuses)
	dispSrvc := dispatch.NewDispatchSrvc(queue, statuses, questionSrvc, battleSrvc)

	return NewHttpServer(dispSrvc, battleSrvc, questionSrvc, testJwtKey), statuses
}

func doJson(t *testing.T, srv *HttpServer, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httpjson.JsonResponse {
	t.Helper()
	var resp httpjson.JsonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func userToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateJWT(userID, userID, testJwtKey)
	require.NoError(t, err)
	return token
}

func TestCodeRunEndpoint(t *testing.T) {
	srv, statuses := setupServer(t)

	rec := doJson(t, srv, http.MethodPost, "/code/run", "", map[string]any{
		"language": "py",
		"code":     "print('hi')",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	data := resp.Data.(map[string]any)
	jobID := data["job_id"].(string)
	assert.Len(t, jobID, 40)

	_, found, err := statuses.Get(context.Background(), jobID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCodeRunEndpointRejectsBadLanguage(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJson(t, srv, http.MethodPost, "/code/run", "", map[string]any{
		"language": "brainfuck",
		"code":     "+",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, dispatch.ErrCodeLanguageNotSupported, resp.ErrCode)
}

func TestCodeStatusEndpoint(t *testing.T) {
	srv, statuses := setupServer(t)
	require.NoError(t, statuses.Set(context.Background(), "abc123", `["Success"]`))

	rec := doJson(t, srv, http.MethodGet, "/code/status/abc123", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, `["Success"]`, data["value"])

	// unknown job ids answer with a null value, not an error
	rec = doJson(t, srv, http.MethodGet, "/code/status/nope", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	data = resp.Data.(map[string]any)
	assert.Nil(t, data["value"])
}

func TestBattleCreateRequiresAuth(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJson(t, srv, http.MethodPost, "/battle/create-battle", "", map[string]any{
		"name": "x", "time_validity": 30, "question_count": 2,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBattleLifecycleEndpoints(t *testing.T) {
	srv, _ := setupServer(t)
	owner := userToken(t, "owner")
	guest := userToken(t, "guest")

	rec := doJson(t, srv, http.MethodPost, "/battle/create-battle", owner, map[string]any{
		"name":           "friday night",
		"time_validity":  30,
		"question_count": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data Battle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "lobby", created.Data.Phase)
	assert.Equal(t, []string{"owner"}, created.Data.ActiveUsers)
	assert.Len(t, created.Data.QuestionIDs, 2)

	battleID := created.Data.ID

	rec = doJson(t, srv, http.MethodPost, "/battle/join-battle", guest, map[string]any{
		"battle_id": battleID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var joined struct {
		Data struct {
			Battle        Battle `json:"battle"`
			AlreadyJoined bool   `json:"already_joined"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	assert.False(t, joined.Data.AlreadyJoined)
	assert.Equal(t, []string{"owner", "guest"}, joined.Data.Battle.ActiveUsers)

	// only the admin can start
	rec = doJson(t, srv, http.MethodPost, "/battle/start-battle", guest, map[string]any{
		"battle_id": battleID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJson(t, srv, http.MethodPost, "/battle/start-battle", owner, map[string]any{
		"battle_id": battleID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var started struct {
		Data Battle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	assert.Equal(t, "arena", started.Data.Phase)
	require.Contains(t, started.Data.Players, "guest")
	assert.Equal(t, 0.0, started.Data.Players["guest"].Score)
	assert.Nil(t, started.Data.Players["guest"].Rank)

	rec = doJson(t, srv, http.MethodGet, "/battle/status?battle_id="+battleID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "arena", data["phase"])
}

func TestBattlePublicListing(t *testing.T) {
	srv, _ := setupServer(t)
	owner := userToken(t, "owner")

	doJson(t, srv, http.MethodPost, "/battle/create-battle", owner, map[string]any{
		"name": "open", "time_validity": 30, "question_count": 1,
	})
	doJson(t, srv, http.MethodPost, "/battle/create-battle", owner, map[string]any{
		"name": "secret", "is_private": true, "time_validity": 30, "question_count": 1,
	})

	rec := doJson(t, srv, http.MethodGet, "/battle/get-public-battles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Data []Battle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, "open", listed.Data[0].Name)
}

func TestQuestionEndpointsHideJudgingMaterial(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doJson(t, srv, http.MethodGet, "/question/all-questions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 3)
	for _, q := range listed.Data {
		assert.NotContains(t, q, "test_cases")
		assert.NotContains(t, q, "solutions")
		assert.Equal(t, float64(1), q["test_count"])
	}
}

func TestQuestionSubmitRecordsSubmission(t *testing.T) {
	srv, _ := setupServer(t)
	owner := userToken(t, "owner")

	rec := doJson(t, srv, http.MethodPost, "/battle/create-battle", owner, map[string]any{
		"name": "b", "time_validity": 30, "question_count": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Data Battle `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJson(t, srv, http.MethodPost,
		"/code/question-submit?question_id="+created.Data.QuestionIDs[0], owner,
		map[string]any{
			"battle_id": created.Data.ID,
			"language":  "py",
			"code":      "print(input())",
		})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	jobID := data["job_id"].(string)

	rec = doJson(t, srv, http.MethodPost, "/battle/update-submission", owner, map[string]any{
		"job_id": jobID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var sub struct {
		Data Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, jobID, sub.Data.ID)
	assert.Equal(t, "owner", sub.Data.UserID)
	assert.Equal(t, "0", sub.Data.Score)
}
