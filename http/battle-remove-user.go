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

func (httpserver *HttpServer) battleRemoveUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrUnauthorized())
		return
	}

	type removeUserRequest struct {
		BattleID string `json:"battle_id"`
		UserID   string `json:"user_id"`
	}

	var request removeUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	battleID, err := uuid.Parse(request.BattleID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, battle.ErrBattleNotFound())
		return
	}

	b, err := httpserver.battleSrvc.Remove(r.Context(), battleID, request.UserID, claims.UserID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapBattle(b, timeNow()))
}
