package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/codearena/backend/httpjson"
	"github.com/codearena/backend/question"
)

var timeNow = time.Now

func (httpserver *HttpServer) questionList(w http.ResponseWriter, r *http.Request) {
	questions, err := httpserver.questionSrvc.List(r.Context())
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	resp := make([]Question, 0, len(questions))
	for i := range questions {
		resp = append(resp, mapQuestion(&questions[i]))
	}
	httpjson.WriteSuccessJson(w, resp)
}

func (httpserver *HttpServer) questionCreate(w http.ResponseWriter, r *http.Request) {
	type testCaseJson struct {
		Input          string `json:"input"`
		ExpectedOutput string `json:"expected_output"`
	}
	type solutionJson struct {
		Language string `json:"language"`
		Code     string `json:"code"`
	}
	type createQuestionRequest struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Points      float64        `json:"points"`
		TestCases   []testCaseJson `json:"test_cases"`
		Solutions   []solutionJson `json:"solutions"`
	}

	var request createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	params := question.CreateQuestionParams{
		Title:       request.Title,
		Description: request.Description,
		Points:      request.Points,
	}
	for _, tc := range request.TestCases {
		params.TestCases = append(params.TestCases, question.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}
	for _, sol := range request.Solutions {
		params.Solutions = append(params.Solutions, question.Solution{
			Language: sol.Language,
			Code:     sol.Code,
		})
	}

	q, err := httpserver.questionSrvc.Create(r.Context(), params)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapQuestion(q))
}
