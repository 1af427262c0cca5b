package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/httpjson"
)

func (httpserver *HttpServer) codeRun(w http.ResponseWriter, r *http.Request) {
	type runRequest struct {
		Language string  `json:"language"`
		Code     string  `json:"code"`
		Input    *string `json:"input"`
		Timeout  *int    `json:"timeout"`
	}

	var request runRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	jobID, err := httpserver.dispSrvc.SubmitRun(r.Context(), dispatch.SubmitRunParams{
		Language: request.Language,
		Code:     request.Code,
		Input:    request.Input,
		Timeout:  request.Timeout,
	})
	if err != nil {
		httpjson.HandleSrvcError(slog.Default(), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"job_id": jobID})
}
