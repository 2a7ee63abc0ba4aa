package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ivr/ivr/internal/config"
	"github.com/ivr/ivr/internal/domain/mapping"
	"github.com/ivr/ivr/internal/domain/resolver"
	"github.com/ivr/ivr/internal/domain/suggest"
	"github.com/ivr/ivr/internal/platform/db"
	"github.com/ivr/ivr/internal/platform/fhirclient"
	"github.com/ivr/ivr/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ivr-server",
		Short: "Insurance verification field mapping server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(schemaCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the verification API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Roll back by restoring a database snapshot taken before the migration.")
			return nil
		},
	})

	return cmd
}

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage manufacturer schemas",
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import YAML schema files into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			schemas, err := mapping.NewFileStore(dir).All()
			if err != nil {
				return fmt.Errorf("failed to read schema files: %w", err)
			}

			repo := mapping.NewSchemaRepoPG(pool)
			err = db.WithTx(ctx, pool, func(ctx context.Context) error {
				for _, s := range schemas {
					if err := repo.SaveSchema(ctx, s); err != nil {
						return fmt.Errorf("saving %s: %w", s.ManufacturerID, err)
					}
					fmt.Printf("Imported schema: %s (%d fields)\n", s.ManufacturerID, len(s.Fields))
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d schema(s) successfully.\n", len(schemas))
			return nil
		},
	}
	importCmd.Flags().String("dir", "./schemas", "Path to YAML schema directory")
	cmd.AddCommand(importCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List schemas in a YAML schema directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			schemas, err := mapping.NewFileStore(dir).All()
			if err != nil {
				return fmt.Errorf("failed to read schema files: %w", err)
			}

			fmt.Printf("%-30s %-30s %s\n", "ID", "NAME", "FIELDS")
			for _, s := range schemas {
				fmt.Printf("%-30s %-30s %d\n", s.ManufacturerID, s.Name, len(s.Fields))
			}
			return nil
		},
	}
	listCmd.Flags().String("dir", "./schemas", "Path to YAML schema directory")
	cmd.AddCommand(listCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// Database is optional: without DATABASE_URL schemas come from
	// YAML files and mapping history is kept in memory.
	var pool *pgxpool.Pool
	if cfg.UsesDatabase() {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
	} else {
		logger.Info().Str("schema_dir", cfg.SchemaDir).Msg("running without database, schemas loaded from files")
	}

	// Storage
	var schemas mapping.SchemaRepository
	var history suggest.HistoryRepository
	if pool != nil {
		schemas = mapping.NewSchemaRepoPG(pool)
		history = suggest.NewHistoryRepoPG(pool)
	} else {
		schemas = mapping.NewFileStore(cfg.SchemaDir)
		history = suggest.NewMemoryHistory()
	}

	// External clinical record store
	var external resolver.ExternalRecords
	if cfg.FHIRBaseURL != "" {
		external = fhirclient.New(cfg.FHIRBaseURL, cfg.FHIRTimeout(), logger)
		logger.Info().Str("base_url", cfg.FHIRBaseURL).Msg("external record lookup enabled")
	}

	// Services
	values := resolver.New(external, cfg.FHIRTimeout(), logger)
	mappingSvc := mapping.NewService(schemas, values, history, logger)
	mappingSvc.Distributor = cfg.DistributorName
	engine := suggest.NewEngine(history, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID", "X-Client-ID"},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit, cfg.ResolveLimit))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))
	e.Use(middleware.Audit(logger))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Schema reads change rarely, serve them with validators and a
	// short-lived response cache.
	apiV1.Use(middleware.ETag(middleware.SchemaCacheConfig()))
	cacheStore := middleware.NewInMemoryCacheStore()
	cacheStore.StartCleanup(ctx, time.Minute)
	apiV1.Use(middleware.ResponseCache(cacheStore, 5*time.Minute))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Domain handlers
	mapping.NewHandler(mappingSvc).RegisterRoutes(apiV1)
	suggest.NewHandler(engine).RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
