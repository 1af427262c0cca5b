package question

import (
	"fmt"
	"net/http"

	"github.com/codearena/backend/srvcerr"
)

const ErrCodeQuestionNotFound = "question_not_found"

func ErrQuestionNotFound() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeQuestionNotFound,
		"question not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTitleMissing = "question_title_missing"

func ErrTitleMissing() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeTitleMissing,
		"question title is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidPoints = "question_points_invalid"

func ErrInvalidPoints() *srvcerr.Error {
	return srvcerr.New(
		ErrCodeInvalidPoints,
		"question points must be positive",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNotEnoughQuestions = "not_enough_questions"

func ErrNotEnoughQuestions(want, have int) *srvcerr.Error {
	return srvcerr.New(
		ErrCodeNotEnoughQuestions,
		fmt.Sprintf("need %d questions but the pool has %d", want, have),
	).SetHttpStatusCode(http.StatusConflict)
}

func ErrInternal() *srvcerr.Error {
	return srvcerr.ErrInternalSE()
}
