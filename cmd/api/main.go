package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fagundes/debt-ledger/internal/application/report"
	"github.com/fagundes/debt-ledger/internal/application/service"
	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/internal/config"
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/infrastructure/database"
	"github.com/fagundes/debt-ledger/internal/infrastructure/repository"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/internal/presentation/http/handler"
	"github.com/fagundes/debt-ledger/internal/presentation/http/middleware"
	"github.com/fagundes/debt-ledger/internal/presentation/http/routes"
	"github.com/fagundes/debt-ledger/pkg/events"
	"github.com/fagundes/debt-ledger/pkg/export"
	"github.com/fagundes/debt-ledger/pkg/printer"
	"github.com/fagundes/debt-ledger/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := logger.WithContext(context.Background(), log)

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.VerifySchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ledger schema check failed")
	}

	if err := database.SeedAdminOperator(ctx, db, log); err != nil {
		log.Warn().Err(err).Msg("failed to seed admin operator")
	}

	loc := cfg.Ledger.Location()
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)
	bus := events.NewBus[entity.LedgerEvent](64)

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	statementRepo := repository.NewStatementRepository(db)
	trashRepo := repository.NewTrashRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)

	// Initialize receipt printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(operatorRepo, jwtManager, service.NewRevokedSessions())
	statementService := service.NewStatementService(customerRepo, statementRepo, operatorRepo, statement.NewBuilder(loc))
	actionService := service.NewActionService(customerRepo, statementRepo, trashRepo, authService, bus, cfg.Ledger.VerifyTimeout, log)
	customerService := service.NewCustomerService(customerRepo, bus)
	dashboardService := service.NewDashboardService(customerRepo)
	trashService := service.NewTrashService(trashRepo, bus)
	operatorService := service.NewOperatorService(operatorRepo)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width)
	exportService := service.NewExportService(
		statementService,
		report.NewRenderer(cfg.Ledger.StoreName, loc),
		export.NewChromePDF(cfg.Export.ChromePath, cfg.Export.Timeout),
		export.NewFileSink(cfg.Export.OutputDir),
		printerService,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, actionService),
		Customer:  handler.NewCustomerHandler(customerService, statementService),
		Action:    handler.NewActionHandler(actionService),
		Report:    handler.NewReportHandler(exportService),
		Trash:     handler.NewTrashHandler(trashService),
		Operator:  handler.NewOperatorHandler(operatorService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService, exportService),
		Events:    handler.NewEventsHandler(bus),
	}

	rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfigFor(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Auth:        authService,
		Cfg:         cfg,
		Log:         log,
		RateLimiter: rateLimiter,
		HealthCheck: pinger(db),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msgf("starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shut down")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func pinger(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
