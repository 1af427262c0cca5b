package conf

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the server settings read from a TOML file. Secrets
// (JWT key, AWS credentials, redis address) stay in the environment.
type Config struct {
	HttpAddress string `toml:"http_address"`
	AwsRegion   string `toml:"aws_region"`

	BattleTable     string `toml:"battle_table"`
	SubmissionTable string `toml:"submission_table"`
	QuestionTable   string `toml:"question_table"`
}

func Default() Config {
	return Config{
		HttpAddress:     ":8080",
		AwsRegion:       "eu-central-1",
		BattleTable:     "codearena_battles",
		SubmissionTable: "codearena_submissions",
		QuestionTable:   "codearena_questions",
	}
}

// Load reads the TOML config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// NewDdbClient constructs the shared DynamoDB client.
func NewDdbClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}
