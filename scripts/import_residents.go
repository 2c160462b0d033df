package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Conversly/community-api/internal/api/residents"
	"github.com/Conversly/community-api/internal/importer"
	"github.com/Conversly/community-api/internal/loaders"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/utils"
	"go.uber.org/zap"
)

// import_residents loads a roster file (CSV or JSON array) into one community.
//
//	go run ./scripts -db postgres://... -community <id> -file roster.csv
func main() {
	rosterFile := flag.String("file", "roster.csv", "Path to the roster file (.csv or .json)")
	dbDSN := flag.String("db", "", "PostgreSQL DSN connection string")
	communityID := flag.String("community", "", "Community to import residents into")
	workers := flag.Int("workers", 4, "Number of concurrent inserts")
	dryRun := flag.Bool("dry-run", false, "Parse and report the roster without writing")
	flag.Parse()

	if *dbDSN == "" && !*dryRun {
		fmt.Println("Error: Database DSN is required. Use -db flag")
		flag.Usage()
		os.Exit(1)
	}
	if *communityID == "" {
		fmt.Println("Error: Community ID is required. Use -community flag")
		flag.Usage()
		os.Exit(1)
	}

	logger, err := utils.InitLogger("info", "production")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	content, err := os.ReadFile(*rosterFile)
	if err != nil {
		logger.Fatal("Failed to read roster file", zap.String("file", *rosterFile), zap.Error(err))
	}
	rows, err := importer.ParseRoster(content, *rosterFile)
	if err != nil {
		logger.Fatal("Failed to parse roster", zap.Error(err))
	}
	logger.Info("Loaded roster", zap.String("file", *rosterFile), zap.Int("rows", len(rows)))

	if *dryRun {
		printReport(importer.Report{Total: len(rows), Skipped: len(rows)})
		return
	}

	pgClient, err := loaders.NewPostgresClient(ctx, *dbDSN, loaders.PoolOptions{
		MaxOpenConns:    *workers + 1,
		ConnectAttempts: 3,
	})
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()

	store := queries.New(pgClient.DB)
	if _, err := store.GetCommunity(ctx, *communityID); err != nil {
		logger.Fatal("Community not found", zap.String("communityId", *communityID), zap.Error(err))
	}

	im, err := importer.New(residents.NewService(store), *workers)
	if err != nil {
		logger.Fatal("Failed to build importer", zap.Error(err))
	}
	report := im.Import(ctx, *communityID, rows)
	printReport(report)

	if report.Failed > 0 || report.Skipped > 0 {
		os.Exit(2)
	}
}

func printReport(report importer.Report) {
	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
