package battle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned by Save* when the document changed since
// it was read. Callers re-read and re-apply their mutation, or fail when
// the invariant they protect no longer holds.
var ErrVersionConflict = errors.New("document version conflict")

// Repo is the battle document store. Get methods return (nil, nil) when
// the document does not exist. Saves are conditional on the version the
// document was read at.
type Repo interface {
	SaveBattle(ctx context.Context, b *Battle) error
	GetBattle(ctx context.Context, id uuid.UUID) (*Battle, error)
	ListPublicBattles(ctx context.Context) ([]Battle, error)

	SaveSubmission(ctx context.Context, sub *Submission) error
	GetSubmission(ctx context.Context, id string) (*Submission, error)
	// ListSubmissions returns every submission by a user for one question
	// of one battle.
	ListSubmissions(ctx context.Context, battleID, questionID uuid.UUID, userID string) ([]Submission, error)
}
