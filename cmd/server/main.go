package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/codearena/backend/battle"
	"github.com/codearena/backend/conf"
	"github.com/codearena/backend/dispatch"
	"github.com/codearena/backend/http"
	"github.com/codearena/backend/jobq"
	"github.com/codearena/backend/question"
	"github.com/codearena/backend/status"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := conf.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ddbClient, err := conf.NewDdbClient(context.Background(), cfg.AwsRegion)
	if err != nil {
		slog.Error("failed to construct dynamodb client", "error", err)
		os.Exit(1)
	}

	questionSrvc := question.NewQuestionSrvc(
		question.NewDdbQuestionRepo(ddbClient, cfg.QuestionTable))
	statusStore := status.NewStoreFromEnv()
	battleSrvc := battle.NewBattleSrvc(
		battle.NewDdbBattleRepo(ddbClient, cfg.BattleTable, cfg.SubmissionTable),
		questionSrvc, statusStore)
	queueClient := jobq.NewClient(slog.Default().With("module", "jobq"))
	dispSrvc := dispatch.NewDispatchSrvc(queueClient, statusStore, questionSrvc, battleSrvc)

	httpServer := http.NewHttpServer(dispSrvc, battleSrvc, questionSrvc, []byte(jwtKey))

	log.Printf("Starting server on %s", cfg.HttpAddress)
	err = httpServer.Start(cfg.HttpAddress)
	log.Printf("Server stopped with error: %v", err)
}
