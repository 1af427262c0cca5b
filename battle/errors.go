package battle

import (
	"net/http"

	"github.com/codearena/backend/srvcerr"
)

const ErrCodeBattleNotFound = "battle_not_found"

func ErrBattleNotFound() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeBattleNotFound,
		"battle not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func ErrSubmissionNotFound() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeSubmissionNotFound,
		"submission not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeNotAuthorized = "not_authorized"

func ErrNotAuthorized() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeNotAuthorized,
		"you are not allowed to perform this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeNotParticipant = "not_participant"

func ErrNotParticipant() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeNotParticipant,
		"user is not a participant of this battle",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeAlreadyStarted = "battle_already_started"

func ErrAlreadyStarted() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeAlreadyStarted,
		"battle has already been started",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeBattleConflict = "battle_conflict"

func ErrBattleConflict() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeBattleConflict,
		"battle was modified concurrently, try again",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeInvalidTimeValidity = "time_validity_invalid"

func ErrInvalidTimeValidity() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeInvalidTimeValidity,
		"time validity must be a positive number of minutes",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidQuestionCount = "question_count_invalid"

func ErrInvalidQuestionCount() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeInvalidQuestionCount,
		"question count must be between 1 and 5",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeOwnerMissing = "owner_missing"

func ErrOwnerMissing() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeOwnerMissing,
		"battle owner is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrInternal() *srvcerr.Error {
	return srvcerr.ErrInternalSE()
}
