package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) battleStatus(w http.ResponseWriter, r *http.Request) {
	battleID, err := uuid.Parse(r.URL.Query().Get("battle_id"))
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, battle.ErrBattleNotFound())
		return
	}

	phase, err := httpserver.battleSrvc.PhaseOf(r.Context(), battleID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"phase": string(phase)})
}

func (httpserver *HttpServer) battleDetails(w http.ResponseWriter, r *http.Request) {
	battleID, err := uuid.Parse(r.URL.Query().Get("battle_id"))
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, battle.ErrBattleNotFound())
		return
	}

	b, err := httpserver.battleSrvc.GetByID(r.Context(), battleID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapBattle(b, timeNow()))
}

func (httpserver *HttpServer) battlePublic(w http.ResponseWriter, r *http.Request) {
	battles, err := httpserver.battleSrvc.ListPublic(r.Context())
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	now := timeNow()
	resp := make([]Battle, 0, len(battles))
	for i := range battles {
		resp = append(resp, mapBattle(&battles[i], now))
	}
	httpjson.WriteSuccessJson(w, resp)
}
