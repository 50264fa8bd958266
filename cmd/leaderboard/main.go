package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/IWhitebird/go-leader-board/api"
	"github.com/IWhitebird/go-leader-board/config"
	_ "github.com/IWhitebird/go-leader-board/docs"
	"github.com/IWhitebird/go-leader-board/internal/audit"
	"github.com/IWhitebird/go-leader-board/internal/db"
	"github.com/IWhitebird/go-leader-board/internal/leaderboard"
	"github.com/IWhitebird/go-leader-board/internal/logging"
)

func main() {
	logging.Init()
	logging.Info("Starting leaderboard service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.NewAppConfig()
	logging.Info(fmt.Sprintf("Configuration: %+v", cfg))

	svc := leaderboard.New()

	pgPool, pgRepo := setupPostgres(cfg)
	if pgPool != nil {
		defer pgPool.Close()
	}

	producer, consumer := setupAuditPipeline(cfg, svc, pgRepo, ctx)
	defer producer.Close()
	defer consumer.Close()

	router := setupRouter(svc, cfg)
	server := setupServer(cfg, router)

	handleGracefulShutdown(server, cancel)
	startServer(cfg, server)
}

// setupPostgres opens the audit-trail database. Unlike the core leaderboard
// state, the audit trail is allowed to be unavailable: a failure here is
// logged and degrades the audit sink, never the API.
func setupPostgres(cfg *config.AppConfig) (*sql.DB, *db.AuditRepository) {
	logging.Info("Initializing PostgreSQL connection for the audit trail")
	pgPool, err := db.CreatePool(cfg)
	if err != nil {
		logging.Error(fmt.Sprintf("Could not reach PostgreSQL, audit trail disabled: %v", err))
		return nil, nil
	}

	pgRepo, err := db.NewAuditRepository(pgPool)
	if err != nil {
		logging.Error(fmt.Sprintf("Could not prepare audit schema, audit trail disabled: %v", err))
		pgPool.Close()
		return nil, nil
	}

	logging.Info("PostgreSQL audit trail ready")
	return pgPool, pgRepo
}

// setupAuditPipeline wires UpdateScore results into a fire-and-forget Kafka
// stream and drains that stream into the audit trail. Neither side ever
// feeds back into svc.
func setupAuditPipeline(cfg *config.AppConfig, svc *leaderboard.Service, pgRepo *db.AuditRepository, ctx context.Context) (*audit.Producer, *audit.Consumer) {
	producer := audit.NewProducer(cfg)

	svc.OnUpdate(func(id int64, delta, newScore decimal.Decimal) {
		go producer.Publish(audit.ScoreUpdatedEvent{
			CustomerID: id,
			Delta:      delta,
			NewScore:   newScore,
			RecordedAt: time.Now().UTC(),
		})
	})

	var saver audit.BatchSaver = discardSaver{}
	if pgRepo != nil {
		saver = pgRepo
	}

	consumer := audit.NewConsumer(cfg, saver)
	consumer.Run(ctx)

	return producer, consumer
}

// discardSaver backs the audit consumer when the PostgreSQL sink could not
// be established, so drained batches are simply dropped instead of the
// consumer failing to start.
type discardSaver struct{}

func (discardSaver) SaveBatch(ctx context.Context, events []audit.ScoreUpdatedEvent) error {
	return nil
}

func setupRouter(svc *leaderboard.Service, cfg *config.AppConfig) *gin.Engine {
	router := gin.Default()
	api.ConfigureRoutes(router, svc, cfg)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router
}

func setupServer(cfg *config.AppConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}
}

func handleGracefulShutdown(server *http.Server, cancel context.CancelFunc) {
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logging.Info("Shutdown signal received, stopping server gracefully...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
		}

		logging.Info("Server gracefully stopped")
	}()
}

func startServer(cfg *config.AppConfig, server *http.Server) {
	logging.Info(fmt.Sprintf("Starting server on http://%s:%d", cfg.Server.Host, cfg.Server.Port))
	logging.Info(fmt.Sprintf("Head to http://%s:%d/swagger/index.html to see the API documentation", cfg.Server.Host, cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Error(fmt.Sprintf("Server error: %v", err))
	}
}
