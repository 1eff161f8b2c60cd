package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"careerate/adapters/excel"
	"careerate/internal/config"
	"careerate/internal/container"
	"careerate/internal/errors"
	"careerate/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Run migrations
	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

// seedCatalog imports the tool catalog from the configured workbook, if any.
func seedCatalog(appContainer *container.Container, filePath string) {
	if filePath == "" {
		return
	}

	reader := excel.NewCatalogReader(filePath)
	tools, err := reader.ReadCatalog()
	if err != nil {
		log.Printf("Warning: catalog import failed: %v", err)
		return
	}

	ctx := context.Background()
	imported := 0
	for _, tool := range tools {
		if err := appContainer.ToolRepo.CreateTool(ctx, tool); err != nil {
			log.Printf("Warning: failed to seed tool %s: %v", tool.Name, err)
			continue
		}
		imported++
	}
	log.Printf("Seeded %d catalog tools from %s", imported, filePath)
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Close()

	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	seedCatalog(appContainer, appConfig.Data.CatalogFile)

	// Optional pprof endpoint
	if appConfig.Profiling.Enabled {
		go func() {
			addr := ":" + appConfig.Profiling.Port
			log.Printf("pprof listening on %s", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Printf("pprof server stopped: %v", err)
			}
		}()
	}

	addr := ":" + appConfig.Server.Port
	log.Printf("Careerate recommendation service listening on %s", addr)
	if err := http.ListenAndServe(addr, appContainer.Server()); err != nil {
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
