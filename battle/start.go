package battle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Start moves a battle from lobby to arena. Only the admin may start, and
// only once: the save is conditioned on the version StartedAt was observed
// unset at, so of two racing starts exactly one wins and the other fails
// with ErrAlreadyStarted. The players snapshot is built from the active
// user list of the winning write.
func (s *BattleSrvc) Start(ctx context.Context, battleID uuid.UUID, callerID string) (*Battle, error) {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		b, err := s.getBattle(ctx, battleID)
		if err != nil {
			return nil, err
		}

		if callerID != b.AdminID() {
			return nil, ErrNotAuthorized()
		}
		if b.StartedAt != nil {
			return nil, ErrAlreadyStarted()
		}

		startedAt := s.now()
		b.StartedAt = &startedAt
		b.Players = make(map[string]PlayerStanding, len(b.ActiveUsers))
		for _, userID := range b.ActiveUsers {
			b.Players[userID] = PlayerStanding{Score: 0, Rank: nil}
		}

		saveErr := s.repo.SaveBattle(ctx, b)
		if saveErr == nil {
			s.logger.Info("battle started",
				"battle_id", battleID, "players", len(b.Players))
			return b, nil
		}
		if !errors.Is(saveErr, ErrVersionConflict) {
			return nil, ErrInternal().SetDebug(saveErr)
		}
		// lost a version race: loop re-reads and, when the winner was a
		// concurrent start, fails on the StartedAt check above
	}
	return nil, ErrBattleConflict()
}
