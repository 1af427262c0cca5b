package status

import (
	"net/http"

	"github.com/codearena/backend/srvcerr"
)

const ErrCodeStoreUnavailable = "store_unavailable"

func ErrStoreUnavailable() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeStoreUnavailable,
		"status store is unavailable",
	).SetHttpStatusCode(http.StatusInternalServerError)
}
