package battle

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

type playerAttr struct {
	Score float64 `dynamo:"score"`
	Rank  *int    `dynamo:"rank"`
}

// BattleRow represents the battle document structure.
type BattleRow struct {
	ID              string                `dynamo:"id,hash"` // Primary key
	Name            string                `dynamo:"name"`
	CreatedAt       time.Time             `dynamo:"created_at"`
	StartedAt       *time.Time            `dynamo:"started_at"`
	TimeValidityMin int                   `dynamo:"time_validity_min"`
	IsPrivate       bool                  `dynamo:"is_private"`
	ActiveUsers     []string              `dynamo:"active_users"`
	QuestionIDs     []string              `dynamo:"question_ids"`
	Players         map[string]playerAttr `dynamo:"players"`
	Version         int                   `dynamo:"version"` // For optimistic locking
}

// SubmissionRow represents the battle submission document structure. The
// battle_id attribute is the hash key of a GSI used to list a user's
// submissions for a question.
type SubmissionRow struct {
	ID         string    `dynamo:"id,hash"` // job id
	BattleID   string    `dynamo:"battle_id" index:"battle_id-index,hash"`
	QuestionID string    `dynamo:"question_id"`
	UserID     string    `dynamo:"user_id"`
	CreatedAt  time.Time `dynamo:"created_at"`
	Score      string    `dynamo:"score"`
	Status     string    `dynamo:"status"`
	Version    int       `dynamo:"version"`
}

// DdbBattleRepo persists battles and their submissions in DynamoDB.
// Every save is a conditional put on the document version, which is what
// keeps racing read-modify-writes from losing updates.
type DdbBattleRepo struct {
	ddbClient *dynamodb.Client

	battleTable *dynamo.Table
	submTable   *dynamo.Table
}

func NewDdbBattleRepo(ddbClient *dynamodb.Client, battleTableName, submTableName string) *DdbBattleRepo {
	repo := &DdbBattleRepo{ddbClient: ddbClient}
	db := dynamo.NewFromIface(ddbClient)
	battleTable := db.Table(battleTableName)
	submTable := db.Table(submTableName)
	repo.battleTable = &battleTable
	repo.submTable = &submTable

	return repo
}

func (r *DdbBattleRepo) SaveBattle(ctx context.Context, b *Battle) error {
	row := rowFromBattle(b)
	row.Version = b.Version + 1

	put := r.battleTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	if err := put.Run(ctx); err != nil {
		var condFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return ErrVersionConflict
		}
		return err
	}
	b.Version = row.Version
	return nil
}

func (r *DdbBattleRepo) GetBattle(ctx context.Context, id uuid.UUID) (*Battle, error) {
	row := new(BattleRow)

	err := r.battleTable.Get("id", id.String()).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return battleFromRow(row)
}

func (r *DdbBattleRepo) ListPublicBattles(ctx context.Context) ([]Battle, error) {
	var rows []BattleRow
	err := r.battleTable.Scan().Filter("is_private = ?", false).All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	battles := make([]Battle, 0, len(rows))
	for i := range rows {
		b, err := battleFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		battles = append(battles, *b)
	}
	return battles, nil
}

func (r *DdbBattleRepo) SaveSubmission(ctx context.Context, sub *Submission) error {
	row := &SubmissionRow{
		ID:         sub.ID,
		BattleID:   sub.BattleID.String(),
		QuestionID: sub.QuestionID.String(),
		UserID:     sub.UserID,
		CreatedAt:  sub.CreatedAt,
		Score:      sub.Score,
		Status:     sub.Status,
		Version:    sub.Version + 1,
	}

	put := r.submTable.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	if err := put.Run(ctx); err != nil {
		var condFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return ErrVersionConflict
		}
		return err
	}
	sub.Version = row.Version
	return nil
}

func (r *DdbBattleRepo) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	row := new(SubmissionRow)

	err := r.submTable.Get("id", id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return submissionFromRow(row)
}

func (r *DdbBattleRepo) ListSubmissions(ctx context.Context, battleID, questionID uuid.UUID, userID string) ([]Submission, error) {
	var rows []SubmissionRow
	err := r.submTable.Get("battle_id", battleID.String()).
		Index("battle_id-index").
		Filter("question_id = ? AND user_id = ?", questionID.String(), userID).
		All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	subs := make([]Submission, 0, len(rows))
	for i := range rows {
		sub, err := submissionFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

func rowFromBattle(b *Battle) *BattleRow {
	row := &BattleRow{
		ID:              b.ID.String(),
		Name:            b.Name,
		CreatedAt:       b.CreatedAt,
		StartedAt:       b.StartedAt,
		TimeValidityMin: b.TimeValidityMin,
		IsPrivate:       b.IsPrivate,
		ActiveUsers:     b.ActiveUsers,
		Players:         make(map[string]playerAttr, len(b.Players)),
	}
	for _, qid := range b.QuestionIDs {
		row.QuestionIDs = append(row.QuestionIDs, qid.String())
	}
	for id, standing := range b.Players {
		row.Players[id] = playerAttr{Score: standing.Score, Rank: standing.Rank}
	}
	return row
}

func battleFromRow(row *BattleRow) (*Battle, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	b := &Battle{
		ID:              id,
		Name:            row.Name,
		CreatedAt:       row.CreatedAt,
		StartedAt:       row.StartedAt,
		TimeValidityMin: row.TimeValidityMin,
		IsPrivate:       row.IsPrivate,
		ActiveUsers:     row.ActiveUsers,
		Players:         make(map[string]PlayerStanding, len(row.Players)),
		Version:         row.Version,
	}
	for _, qidStr := range row.QuestionIDs {
		qid, err := uuid.Parse(qidStr)
		if err != nil {
			return nil, err
		}
		b.QuestionIDs = append(b.QuestionIDs, qid)
	}
	for userID, attr := range row.Players {
		b.Players[userID] = PlayerStanding{Score: attr.Score, Rank: attr.Rank}
	}
	return b, nil
}

func submissionFromRow(row *SubmissionRow) (*Submission, error) {
	battleID, err := uuid.Parse(row.BattleID)
	if err != nil {
		return nil, err
	}
	questionID, err := uuid.Parse(row.QuestionID)
	if err != nil {
		return nil, err
	}
	return &Submission{
		ID:         row.ID,
		BattleID:   battleID,
		QuestionID: questionID,
		UserID:     row.UserID,
		CreatedAt:  row.CreatedAt,
		Score:      row.Score,
		Status:     row.Status,
		Version:    row.Version,
	}, nil
}
