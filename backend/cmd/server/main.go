package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/social"
	"socialgraph/backend/internal/web"
	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting social graph server...", zap.String("env", cfg.Env))

	ctx := context.Background()
	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize service", zap.Error(err))
	}
	defer cleanup()

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := web.NewRouter(svc, log)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// buildService wires the engine and, when enabled, the Neo4j mirror. The
// returned cleanup closes whatever was opened.
func buildService(ctx context.Context, cfg *config.Config) (*social.Service, func(), error) {
	log := logger.Get()

	var opts []social.Option
	if cfg.FixedDate != "" {
		log.Info("Using fixed date for new content", zap.String("date", cfg.FixedDate))
		opts = append(opts, social.WithClock(social.FixedClock(cfg.FixedDate)))
	}
	engine := social.NewEngine(opts...)

	if !cfg.Neo4jEnabled {
		log.Info("Neo4j mirror disabled")
		return social.NewService(engine, nil, cfg.MirrorTimeout), func() {}, nil
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	// Verify Neo4j connection
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	repo := graph.NewRepository(driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Warn("Failed to apply some schema statements (may already exist)", zap.Error(err))
	}

	log.Info("Neo4j mirror enabled", zap.String("uri", cfg.Neo4jURI))
	cleanup := func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Warn("Failed to close Neo4j driver", zap.Error(err))
		}
	}
	return social.NewService(engine, repo, cfg.MirrorTimeout), cleanup, nil
}
