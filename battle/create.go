package battle

import (
	"context"

	"github.com/google/uuid"
)

const (
	minQuestionCount = 1
	maxQuestionCount = 5
)

type CreateBattleParams struct {
	OwnerID         string
	Name            string
	IsPrivate       bool
	TimeValidityMin int
	QuestionCount   int
}

// Create makes a new battle in lobby phase. The question set is sampled
// at random from the full pool and snapshotted into the battle.
func (s *BattleSrvc) Create(ctx context.Context, p CreateBattleParams) (*Battle, error) {
	if p.OwnerID == "" {
		return nil, ErrOwnerMissing()
	}
	if p.TimeValidityMin <= 0 {
		return nil, ErrInvalidTimeValidity()
	}
	if p.QuestionCount < minQuestionCount || p.QuestionCount > maxQuestionCount {
		return nil, ErrInvalidQuestionCount()
	}

	picked, err := s.questions.PickRandom(ctx, p.QuestionCount)
	if err != nil {
		return nil, err
	}
	questionIDs := make([]uuid.UUID, len(picked))
	for i, q := range picked {
		questionIDs[i] = q.ID
	}

	b := &Battle{
		ID:              uuid.New(),
		Name:            p.Name,
		CreatedAt:       s.now(),
		TimeValidityMin: p.TimeValidityMin,
		IsPrivate:       p.IsPrivate,
		ActiveUsers:     []string{p.OwnerID},
		QuestionIDs:     questionIDs,
		Players:         map[string]PlayerStanding{},
	}
	if err := s.repo.SaveBattle(ctx, b); err != nil {
		return nil, ErrInternal().SetDebug(err)
	}
	s.logger.Info("battle created",
		"battle_id", b.ID, "owner", p.OwnerID, "questions", len(questionIDs))
	return b, nil
}
