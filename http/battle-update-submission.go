package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codearena/backend/auth"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) battleUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleSrvcError(slog.Default(), w, dispatch.ErrUnauthorized())
		return
	}

	type updateSubmissionRequest struct {
		JobID string `json:"job_id"`
	}

	var request updateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sub, err := httpserver.battleSrvc.UpdateSubmission(r.Context(), request.JobID, claims.UserID)
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubmission(sub))
}
