package dispatch

import (
	"net/http"

	"github.com/codearena/backend/srvcerr"
)

const ErrCodeLanguageMissing = "language_missing"

func ErrLanguageMissing() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeLanguageMissing,
		"language not received",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeLanguageNotSupported = "language_not_supported"

func ErrLanguageNotSupported() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeLanguageNotSupported,
		"language not supported",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeCodeMissing = "code_missing"

func ErrCodeMissing() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeCodeMissing,
		"code not received",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeQuestionIdMissing = "question_id_missing"

func ErrQuestionIdMissing() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeQuestionIdMissing,
		"question id is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeBattleIdMissing = "battle_id_missing"

func ErrBattleIdMissing() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeBattleIdMissing,
		"battle id is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeUnauthorized = "unauthorized"

func ErrUnauthorized() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeUnauthorized,
		"authentication required",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeQuestionNotReady = "question_not_ready"

func ErrQuestionNotReady() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeQuestionNotReady,
		"question has no test cases or reference solution",
	).SetHttpStatusCode(http.StatusConflict)
}
