package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/codearena/backend/auth"
	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) battleJoin(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrUnauthorized())
		return
	}

	type joinBattleRequest struct {
		BattleID string `json:"battle_id"`
	}

	var request joinBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	battleID, err := uuid.Parse(request.BattleID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, battle.ErrBattleNotFound())
		return
	}

	b, alreadyJoined, err := httpserver.battleSrvc.Join(r.Context(), battleID, claims.UserID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	type joinBattleResponse struct {
		Battle        Battle `json:"battle"`
		AlreadyJoined bool   `json:"already_joined"`
	}
	httpjson.WriteSuccessJson(w, joinBattleResponse{
		Battle:        mapBattle(b, timeNow()),
		AlreadyJoined: alreadyJoined,
	})
}
