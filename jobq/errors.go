package jobq

import (
	"net/http"

	"github.com/codearena/backend/srvcerr"
)

const ErrCodeQueueUnavailable = "queue_unavailable"

func ErrQueueUnavailable() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeQueueUnavailable,
		"job queue is unavailable, try again later",
	).SetHttpStatusCode(http.StatusInternalServerError)
}
