package battle

import (
	"time"

	"github.com/google/uuid"
)

// PlayerStanding is one leaderboard entry. Rank is nil while the player's
// score is zero.
type PlayerStanding struct {
	Score float64 `json:"score"`
	Rank  *int    `json:"rank"`
}

// Battle is a timed multi-question competitive session. ActiveUsers[0] is
// always the battle's admin. Players is snapshotted at start and stays a
// subset of ActiveUsers afterwards.
type Battle struct {
	ID              uuid.UUID
	Name            string
	CreatedAt       time.Time
	StartedAt       *time.Time
	TimeValidityMin int
	IsPrivate       bool
	ActiveUsers     []string
	QuestionIDs     []uuid.UUID
	Players         map[string]PlayerStanding

	Version int // For optimistic locking
}

// Phase is the derived lifecycle state of a battle. It is computed from
// StartedAt and TimeValidityMin, never stored.
type Phase string

const (
	PhaseLobby     Phase = "lobby"
	PhaseArena     Phase = "arena"
	PhaseCompleted Phase = "completed"
)

// PhaseAt derives the battle phase at the given instant.
func (b *Battle) PhaseAt(now time.Time) Phase {
	if b.StartedAt == nil {
		return PhaseLobby
	}
	if b.IsCompletedAt(now) {
		return PhaseCompleted
	}
	return PhaseArena
}

// IsCompletedAt reports whether the validity window has elapsed.
func (b *Battle) IsCompletedAt(now time.Time) bool {
	if b.StartedAt == nil {
		return false
	}
	validTill := b.StartedAt.Add(time.Duration(b.TimeValidityMin) * time.Minute)
	return now.After(validTill)
}

// AdminID returns the user id of the battle's admin.
func (b *Battle) AdminID() string {
	if len(b.ActiveUsers) == 0 {
		return ""
	}
	return b.ActiveUsers[0]
}

// HasUser reports whether userID is among the battle's active users.
func (b *Battle) HasUser(userID string) bool {
	for _, u := range b.ActiveUsers {
		if u == userID {
			return true
		}
	}
	return false
}

// Submission links a queued job to a battle, a question and its author.
// Score and Status are overwritten on each update-submission call.
type Submission struct {
	ID         string // job id, 40-char hex
	BattleID   uuid.UUID
	QuestionID uuid.UUID
	UserID     string
	CreatedAt  time.Time
	Score      string // decimal string, "0" until scored
	Status     string // latest job status payload

	Version int
}
