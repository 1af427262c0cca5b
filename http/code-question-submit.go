package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/codearena/backend/auth"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) codeQuestionSubmit(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrUnauthorized())
		return
	}

	questionID, err := uuid.Parse(r.URL.Query().Get("question_id"))
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrQuestionIdMissing())
		return
	}

	type questionSubmitRequest struct {
		BattleID string `json:"battle_id"`
		Language string `json:"language"`
		Code     string `json:"code"`
		Timeout  *int   `json:"timeout"`
	}

	var request questionSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	battleID, err := uuid.Parse(request.BattleID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrBattleIdMissing())
		return
	}

	jobID, err := httpserver.dispSrvc.SubmitQuestionSubmit(r.Context(), dispatch.SubmitQuestionSubmitParams{
		QuestionID: questionID,
		BattleID:   battleID,
		Language:   request.Language,
		Code:       request.Code,
		Timeout:    request.Timeout,
	}, claims.UserID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"job_id": jobID})
}
