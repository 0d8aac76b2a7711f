// Command importclients loads a tracker spreadsheet into the CRM.
// Rows are matched to existing clients by email: matches are updated,
// the rest are created. Centers with a current payment import as
// active clients, the rest as prospects.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bowlnow/crm/internal/client"
	clientStore "github.com/bowlnow/crm/internal/client/store"
	"github.com/bowlnow/crm/internal/config"
	"github.com/bowlnow/crm/internal/database"
	"github.com/bowlnow/crm/internal/importer/tracker"
	"github.com/bowlnow/crm/internal/logging"
	"github.com/bowlnow/crm/migrations"
)

func main() {
	var file string

	flag.StringVar(&file, "file", "", "path to the tracker CSV export")
	flag.Parse()

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: importclients -file <tracker.csv>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Log.Level)
	ctx := context.Background()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.ApplyMigrations(ctx, db, migrations.Files); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(file)
	if err != nil {
		logger.Error("failed to open tracker file", "file", file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	params, err := tracker.NewParser().Parse(f)
	if err != nil {
		logger.Error("failed to parse tracker file", "file", file, "error", err)
		os.Exit(1)
	}

	svc := client.NewService(clientStore.New(db))

	res, err := svc.ImportBatch(ctx, params)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	logger.Info("import finished",
		"file", file,
		"rows", len(params),
		"created", len(res.Created),
		"updated", len(res.Updated),
	)
}
