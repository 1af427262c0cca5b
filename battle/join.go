package battle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Join adds userID to the battle's active users. Joining twice is an
// idempotent no-op signalled through alreadyJoined. Joining after start is
// allowed; a late joiner also gets a zero leaderboard entry so their
// submissions can score.
func (s *BattleSrvc) Join(ctx context.Context, battleID uuid.UUID, userID string) (b *Battle, alreadyJoined bool, err error) {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		b, err = s.getBattle(ctx, battleID)
		if err != nil {
			return nil, false, err
		}

		if b.HasUser(userID) {
			return b, true, nil
		}

		b.ActiveUsers = append(b.ActiveUsers, userID)
		if b.StartedAt != nil {
			b.Players[userID] = PlayerStanding{Score: 0, Rank: nil}
		}

		saveErr := s.repo.SaveBattle(ctx, b)
		if saveErr == nil {
			s.logger.Info("user joined battle", "battle_id", battleID, "user_id", userID)
			return b, false, nil
		}
		if !errors.Is(saveErr, ErrVersionConflict) {
			return nil, false, ErrInternal().SetDebug(saveErr)
		}
	}
	return nil, false, ErrBattleConflict()
}

func (s *BattleSrvc) getBattle(ctx context.Context, battleID uuid.UUID) (*Battle, error) {
	b, err := s.repo.GetBattle(ctx, battleID)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	if b == nil {
		return nil, ErrBattleNotFound()
	}
	return b, nil
}
