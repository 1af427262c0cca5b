package battle

import (
	"log/slog"
	"time"

	"github.com/codearena/backend/question"
	"github.com/codearena/backend/status"
)

// How many times a read-modify-write is re-applied after losing a version
// race before giving up with a conflict error. Start is an exception: it
// fails as soon as it observes a set StartedAt.
const maxTxRetries = 3

// BattleSrvc manages battle lifecycle, membership and the leaderboard.
type BattleSrvc struct {
	logger    *slog.Logger
	repo      Repo
	questions *question.QuestionSrvc
	statuses  *status.Store

	now func() time.Time
}

func NewBattleSrvc(repo Repo, questions *question.QuestionSrvc, statuses *status.Store) *BattleSrvc {
	return &BattleSrvc{
		logger:    slog.Default().With("module", "battle"),
		repo:      repo,
		questions: questions,
		statuses:  statuses,
		now:       time.Now,
	}
}

// SetClock overrides the service clock. Used by tests to drive phase
// transitions.
func (s *BattleSrvc) SetClock(now func() time.Time) {
	s.now = now
}
