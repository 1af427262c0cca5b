package http

import (
	"time"

	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/question"
)

type PlayerStanding struct {
	Score float64 `json:"score"`
	Rank  *int    `json:"rank"`
}

type Battle struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	CreatedAt       time.Time                 `json:"created_at"`
	StartedAt       *time.Time                `json:"started_at,omitempty"`
	TimeValidityMin int                       `json:"time_validity"`
	IsPrivate       bool                      `json:"is_private"`
	Phase           string                    `json:"phase"`
	ActiveUsers     []string                  `json:"active_users"`
	QuestionIDs     []string                  `json:"question_ids"`
	Players         map[string]PlayerStanding `json:"players"`
}

type Submission struct {
	ID         string    `json:"id"`
	BattleID   string    `json:"battle_id"`
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	Score      string    `json:"score"`
	Status     string    `json:"status"`
}

type Question struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
	TestCount   int     `json:"test_count"`
}

func mapBattle(b *battle.Battle, now time.Time) Battle {
	resp := Battle{
		ID:              b.ID.String(),
		Name:            b.Name,
		CreatedAt:       b.CreatedAt,
		StartedAt:       b.StartedAt,
		TimeValidityMin: b.TimeValidityMin,
		IsPrivate:       b.IsPrivate,
		Phase:           string(b.PhaseAt(now)),
		ActiveUsers:     b.ActiveUsers,
		QuestionIDs:     []string{},
		Players:         map[string]PlayerStanding{},
	}
	for _, qid := range b.QuestionIDs {
		resp.QuestionIDs = append(resp.QuestionIDs, qid.String())
	}
	for userID, standing := range b.Players {
		resp.Players[userID] = PlayerStanding{Score: standing.Score, Rank: standing.Rank}
	}
	return resp
}

func mapSubmission(sub *battle.Submission) Submission {
	return Submission{
		ID:         sub.ID,
		BattleID:   sub.BattleID.String(),
		QuestionID: sub.QuestionID.String(),
		UserID:     sub.UserID,
		CreatedAt:  sub.CreatedAt,
		Score:      sub.Score,
		Status:     sub.Status,
	}
}

// mapQuestion omits test cases and solutions: those are hidden judging
// material, never exposed over the API.
func mapQuestion(q *question.Question) Question {
	return Question{
		ID:          q.ID.String(),
		Title:       q.Title,
		Description: q.Description,
		Points:      q.Points,
		TestCount:   len(q.TestCases),
	}
}
