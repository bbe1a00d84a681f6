package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"infinite-experiment/airclock/internal/api"
	"infinite-experiment/airclock/internal/config"
	"infinite-experiment/airclock/internal/db"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/temporal"

	"go.uber.org/zap"
	gormlib "gorm.io/gorm"
)

func main() {
	asJSON := flag.Bool("json", false, "print profiles as JSON instead of cards")
	syncFirst := flag.Bool("sync", false, "import the airport dataset before looking up")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: airclock [-json] [-sync] ICAO [ICAO...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Cards go to stdout; keep library logging quiet
	logging.SetLogger(zap.NewNop().Sugar())

	gormDB, err := openDirectory(cfg.Database)
	if err != nil {
		log.Fatalf("open airport directory: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate airport directory: %v", err)
	}

	deps, err := api.InitDependencies(cfg, gormDB, nil, nil)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	ctx := context.Background()
	if *syncFirst {
		imported, err := deps.Services.AirportLoader.LoadFromURL(ctx, cfg.Airports.SourceURL)
		if err != nil {
			log.Fatalf("sync airports: %v", err)
		}
		fmt.Println(mutedStyle.Render(fmt.Sprintf("imported %d airports", imported)))
	}

	exitCode := 0
	for _, icao := range flag.Args() {
		profile, err := deps.Services.Temporal.GetProfile(ctx, icao)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%s: %v", icao, err)))
			exitCode = 1
			continue
		}
		if profile == nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%s: airport not found", icao)))
			exitCode = 1
			continue
		}

		if *asJSON {
			printJSON(profile)
			continue
		}
		fmt.Println(renderCard(profile))
	}
	os.Exit(exitCode)
}

func printJSON(profile *temporal.Profile) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profile); err != nil {
		log.Printf("encode profile: %v", err)
	}
}

func openDirectory(cfg config.DatabaseConfig) (*gormlib.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return db.InitSQLiteORM(cfg.SQLitePath)
	default:
		return db.InitPostgresORM(cfg.PostgresDSN())
	}
}
