package battle

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemBattleRepo mirrors the DynamoDB repo's conditional-save semantics
// in memory: a save against a stale version fails with
// ErrVersionConflict, exactly like the conditional put would.
type InMemBattleRepo struct {
	lock    sync.Mutex
	battles map[uuid.UUID]Battle
	subs    map[string]Submission
}

func NewInMemBattleRepo() *InMemBattleRepo {
	return &InMemBattleRepo{
		battles: make(map[uuid.UUID]Battle),
		subs:    make(map[string]Submission),
	}
}

func (m *InMemBattleRepo) SaveBattle(ctx context.Context, b *Battle) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if cur, ok := m.battles[b.ID]; ok && cur.Version != b.Version {
		return ErrVersionConflict
	}
	b.Version++
	m.battles[b.ID] = *copyBattle(b)
	return nil
}

func (m *InMemBattleRepo) GetBattle(ctx context.Context, id uuid.UUID) (*Battle, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	b, ok := m.battles[id]
	if !ok {
		return nil, nil
	}
	return copyBattle(&b), nil
}

func (m *InMemBattleRepo) ListPublicBattles(ctx context.Context) ([]Battle, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	var battles []Battle
	for _, b := range m.battles {
		if !b.IsPrivate {
			battles = append(battles, *copyBattle(&b))
		}
	}
	return battles, nil
}

func (m *InMemBattleRepo) SaveSubmission(ctx context.Context, sub *Submission) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if cur, ok := m.subs[sub.ID]; ok && cur.Version != sub.Version {
		return ErrVersionConflict
	}
	sub.Version++
	m.subs[sub.ID] = *sub
	return nil
}

func (m *InMemBattleRepo) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	sub, ok := m.subs[id]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (m *InMemBattleRepo) ListSubmissions(ctx context.Context, battleID, questionID uuid.UUID, userID string) ([]Submission, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	var subs []Submission
	for _, sub := range m.subs {
		if sub.BattleID == battleID && sub.QuestionID == questionID && sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func copyBattle(b *Battle) *Battle {
	dup := *b
	dup.ActiveUsers = append([]string(nil), b.ActiveUsers...)
	dup.QuestionIDs = append([]uuid.UUID(nil), b.QuestionIDs...)
	dup.Players = make(map[string]PlayerStanding, len(b.Players))
	for id, standing := range b.Players {
		if standing.Rank != nil {
			rank := *standing.Rank
			standing.Rank = &rank
		}
		dup.Players[id] = standing
	}
	return &dup
}
