package battle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Remove takes targetID out of the battle. Legal for the target themselves
// and for the admin. The player's leaderboard entry is deleted too so
// Players stays a subset of ActiveUsers.
func (s *BattleSrvc) Remove(ctx context.Context, battleID uuid.UUID, targetID, callerID string) (*Battle, error) {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		b, err := s.getBattle(ctx, battleID)
		if err != nil {
			return nil, err
		}

		if callerID != targetID && callerID != b.AdminID() {
			return nil, ErrNotAuthorized()
		}
		if !b.HasUser(targetID) {
			return nil, ErrNotParticipant()
		}

		users := make([]string, 0, len(b.ActiveUsers)-1)
		for _, u := range b.ActiveUsers {
			if u != targetID {
				users = append(users, u)
			}
		}
		b.ActiveUsers = users
		delete(b.Players, targetID)

		saveErr := s.repo.SaveBattle(ctx, b)
		if saveErr == nil {
			s.logger.Info("user removed from battle",
				"battle_id", battleID, "user_id", targetID, "by", callerID)
			return b, nil
		}
		if !errors.Is(saveErr, ErrVersionConflict) {
			return nil, ErrInternal().SetDebug(saveErr)
		}
	}
	return nil, ErrBattleConflict()
}
