package battle

import (
	"context"

	"github.com/google/uuid"
)

// GetByID returns the battle or a not-found error.
func (s *BattleSrvc) GetByID(ctx context.Context, battleID uuid.UUID) (*Battle, error) {
	return s.getBattle(ctx, battleID)
}

// PhaseOf derives the battle's current phase.
func (s *BattleSrvc) PhaseOf(ctx context.Context, battleID uuid.UUID) (Phase, error) {
	b, err := s.getBattle(ctx, battleID)
	if err != nil {
		return "", err
	}
	return b.PhaseAt(s.now()), nil
}

// ListPublic returns every battle that is open for anyone to join.
func (s *BattleSrvc) ListPublic(ctx context.Context) ([]Battle, error) {
	battles, err := s.repo.ListPublicBattles(ctx)
	if err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	return battles, nil
}

// RecordSubmission persists the linkage between a queued job and the
// battle, question and author it was submitted for.
func (s *BattleSrvc) RecordSubmission(ctx context.Context, sub *Submission) error {
	if err := s.repo.SaveSubmission(ctx, sub); err != nil {
		return ErrInternal().SetDebug(err)
	}
	return nil
}
