package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) codeQuestionRun(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(r.URL.Query().Get("question_id"))
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrQuestionIdMissing())
		return
	}

	type questionRunRequest struct {
		Language   string   `json:"language"`
		Code       string   `json:"code"`
		TestInputs []string `json:"test_inputs"`
		Timeout    *int     `json:"timeout"`
	}

	var request questionRunRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	jobID, err := httpserver.dispSrvc.SubmitQuestionRun(r.Context(), dispatch.SubmitQuestionRunParams{
		QuestionID: questionID,
		Language:   request.Language,
		Code:       request.Code,
		TestInputs: request.TestInputs,
		Timeout:    request.Timeout,
	})
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"job_id": jobID})
}
