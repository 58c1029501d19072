package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/voyageai/recommender-backend/internal/adapters/database"
	"github.com/voyageai/recommender-backend/internal/evaluation"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/modelserver"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/postgres"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/sqlite"
	"github.com/voyageai/recommender-backend/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/evaluation.json", "path to the evaluation run config")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	runConfig, err := evaluation.LoadRunConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load run config: %v", err)
	}

	var db *sql.DB
	var closeDB func() error
	switch cfg.Database.Driver {
	case "postgres":
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		db = client.DB()
		closeDB = client.Close
	default:
		client, err := sqlite.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		db = client.DB()
		closeDB = client.Close
	}
	defer closeDB()

	modelClient := modelserver.NewClient(cfg.Model.ServerURL)
	schema, err := modelserver.LoadSchema(cfg.Model.SchemaPath)
	if err != nil {
		log.Fatalf("Failed to load feature schema: %v", err)
	}

	ctx := context.Background()

	dialect := database.Dialect(cfg.Database.Driver)
	events, err := database.NewVisitAdapter(db, dialect).LoadEnriched(ctx)
	if err != nil {
		log.Fatalf("Failed to load visit log: %v", err)
	}
	catalog, err := database.NewAttractionAdapter(db, dialect).ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load attraction catalog: %v", err)
	}

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MinVisits: runConfig.MinVisits,
		MaxUsers:  runConfig.MaxUsers,
	})

	runner := evaluation.NewRunner(modelClient, schema, guardrails)
	summary, err := runner.Run(ctx, events, catalog, runConfig.K, runConfig.UserIDs)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	// Output results as JSON
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode summary: %v", err)
	}
	fmt.Println(string(out))
}
