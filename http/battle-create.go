package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codearena/backend/auth"
	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) battleCreate(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrUnauthorized())
		return
	}

	type createBattleRequest struct {
		Name          string `json:"name"`
		IsPrivate     bool   `json:"is_private"`
		TimeValidity  int    `json:"time_validity"`
		QuestionCount int    `json:"question_count"`
	}

	var request createBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	b, err := httpserver.battleSrvc.Create(r.Context(), battle.CreateBattleParams{
		OwnerID:         claims.UserID,
		Name:            request.Name,
		IsPrivate:       request.IsPrivate,
		TimeValidityMin: request.TimeValidity,
		QuestionCount:   request.QuestionCount,
	})
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapBattle(b, timeNow()))
}
