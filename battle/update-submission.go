package battle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// UpdateSubmission pulls the job's latest status from the status store,
// rescores the submission and, when the author beat their previous best
// for that question, applies the improvement to the battle leaderboard.
// The submission record itself is always updated for history, leaderboard
// or not.
func (s *BattleSrvc) UpdateSubmission(ctx context.Context, jobID string, callerID string) (*Submission, error) {
	sub, err := s.repo.GetSubmission(ctx, jobID)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound()
	}
	if sub.UserID != callerID {
		return nil, ErrNotAuthorized()
	}

	q, err := s.questions.Get(ctx, sub.QuestionID)
	if err != nil {
		return nil, err
	}

	statusVal, found, err := s.statuses.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if found {
		sub.Status = statusVal
	}

	newScore := 0.0
	if outcomes, ok := parseOutcomes(sub.Status); ok {
		newScore = scoreOutcomes(outcomes, len(q.TestCases), q.Points)
	}

	// the leaderboard only moves when this run beats the author's best
	// prior score for the question in this battle. The submission's own
	// persisted score counts as prior: rescoring the same job again must
	// not re-apply an increment the leaderboard already absorbed.
	prevBest, err := s.bestScore(ctx, sub.BattleID, sub.QuestionID, sub.UserID, sub.ID)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	if own := parseScore(sub.Score); own > prevBest {
		prevBest = own
	}
	increment := newScore - prevBest
	if increment < 0 {
		increment = 0
	}

	sub.Score = formatScore(newScore)
	if err := s.repo.SaveSubmission(ctx, sub); err != nil {
		return nil, ErrInternal().SetDebug(err)
	}

	if increment == 0 {
		return sub, nil
	}
	if err := s.applyLeaderboardDelta(ctx, sub, increment); err != nil {
		return nil, err
	}
	return sub, nil
}

// bestScore returns the author's highest prior score for the question,
// ignoring the submission being rescored.
func (s *BattleSrvc) bestScore(ctx context.Context, battleID, questionID uuid.UUID, userID, excludeID string) (float64, error) {
	subs, err := s.repo.ListSubmissions(ctx, battleID, questionID, userID)
	if err != nil {
		return 0, err
	}
	best := 0.0
	for _, prior := range subs {
		if prior.ID == excludeID {
			continue
		}
		if score := parseScore(prior.Score); score > best {
			best = score
		}
	}
	return best, nil
}

func (s *BattleSrvc) applyLeaderboardDelta(ctx context.Context, sub *Submission, increment float64) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		b, err := s.getBattle(ctx, sub.BattleID)
		if err != nil {
			return err
		}
		if b.IsCompletedAt(s.now()) {
			s.logger.Info("battle completed, leaderboard frozen",
				"battle_id", b.ID, "job_id", sub.ID)
			return nil
		}
		if _, ok := b.Players[sub.UserID]; !ok {
			s.logger.Warn("submission author is not on the leaderboard",
				"battle_id", b.ID, "user_id", sub.UserID)
			return nil
		}

		b.Players = updateLeaderboard(b.Players, b.ActiveUsers, sub.UserID, increment)

		saveErr := s.repo.SaveBattle(ctx, b)
		if saveErr == nil {
			s.logger.Info("leaderboard updated",
				"battle_id", b.ID, "user_id", sub.UserID, "increment", increment)
			return nil
		}
		if !errors.Is(saveErr, ErrVersionConflict) {
			return ErrInternal().SetDebug(saveErr)
		}
	}
	return ErrBattleConflict()
}
