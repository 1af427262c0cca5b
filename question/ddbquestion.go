package question

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

type testCaseAttr struct {
	Input          string `dynamo:"input"`
	ExpectedOutput string `dynamo:"expected_output"`
}

type solutionAttr struct {
	Language string `dynamo:"language"`
	Code     string `dynamo:"code"`
}

// QuestionRow represents the question document structure.
type QuestionRow struct {
	ID          string         `dynamo:"id,hash"` // Primary key
	Title       string         `dynamo:"title"`
	Description string         `dynamo:"description"`
	Points      float64        `dynamo:"points"`
	TestCases   []testCaseAttr `dynamo:"test_cases"`
	Solutions   []solutionAttr `dynamo:"solutions"`
	Version     int            `dynamo:"version"` // For optimistic locking
	CreatedAt   time.Time      `dynamo:"created_at"`
}

// DdbQuestionRepo persists questions in a DynamoDB table.
type DdbQuestionRepo struct {
	ddbClient *dynamodb.Client
	tableName string
	table     *dynamo.Table
}

func NewDdbQuestionRepo(ddbClient *dynamodb.Client, tableName string) *DdbQuestionRepo {
	repo := &DdbQuestionRepo{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(repo.ddbClient)
	table := db.Table(repo.tableName)
	repo.table = &table

	return repo
}

func (r *DdbQuestionRepo) Save(ctx context.Context, q *Question) error {
	row := rowFromQuestion(q)
	row.Version++

	put := r.table.Put(row).If("attribute_not_exists(version) OR version = ?", row.Version-1)
	return put.Run(ctx)
}

func (r *DdbQuestionRepo) Get(ctx context.Context, id uuid.UUID) (*Question, error) {
	row := new(QuestionRow)

	err := r.table.Get("id", id.String()).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return questionFromRow(row)
}

func (r *DdbQuestionRepo) List(ctx context.Context) ([]Question, error) {
	var rows []QuestionRow
	err := r.table.Scan().All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(rows))
	for i := range rows {
		q, err := questionFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

func rowFromQuestion(q *Question) *QuestionRow {
	row := &QuestionRow{
		ID:          q.ID.String(),
		Title:       q.Title,
		Description: q.Description,
		Points:      q.Points,
		CreatedAt:   q.CreatedAt,
	}
	for _, tc := range q.TestCases {
		row.TestCases = append(row.TestCases, testCaseAttr{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}
	for _, sol := range q.Solutions {
		row.Solutions = append(row.Solutions, solutionAttr{
			Language: sol.Language,
			Code:     sol.Code,
		})
	}
	return row
}

func questionFromRow(row *QuestionRow) (*Question, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	q := &Question{
		ID:          id,
		Title:       row.Title,
		Description: row.Description,
		Points:      row.Points,
		CreatedAt:   row.CreatedAt,
	}
	for _, tc := range row.TestCases {
		q.TestCases = append(q.TestCases, TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}
	for _, sol := range row.Solutions {
		q.Solutions = append(q.Solutions, Solution{
			Language: sol.Language,
			Code:     sol.Code,
		})
	}
	return q, nil
}
