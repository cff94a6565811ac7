package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "github.com/AminePrince/bmsbackend/internal/api/http"
	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/config"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/events"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository/postgres"
	"github.com/AminePrince/bmsbackend/internal/service"
	"github.com/AminePrince/bmsbackend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BMS Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	clk := clock.System()
	bus := events.NewBus()

	// Initialize Services
	availabilitySvc := service.NewAvailabilityService(
		store.VehicleRepository,
		store.RentalRepository,
		store.MaintenanceRepository,
		store.IncidentRepository,
		store.ClientRepository,
		clk,
	)
	installmentSvc := service.NewInstallmentService(store.InstallmentRepository, store.FinancialLogRepository, bus, clk)
	expenseSvc := service.NewExpenseService(store.ExpenseRepository, store.FinancialLogRepository, bus, clk)
	claimSvc := service.NewClaimService(store.IncidentRepository, store.FinancialLogRepository, bus, clk)
	financialSvc := service.NewFinancialService(
		store.RentalRepository,
		store.RentalPaymentRepository,
		store.ExpenseRepository,
		store.IncidentRepository,
		store.InstallmentRepository,
		store.VehicleRepository,
		store.ClientRepository,
		clk,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository, clk)

	// Event subscriptions: ledger mutations settle before these run, so the
	// handlers only observe.
	bus.Subscribe(events.InstallmentPaid, func(ev events.Event) {
		if inst, ok := ev.Payload.(*domain.VehicleInstallment); ok && inst.Settled() {
			logger.Info("Installment plan fully repaid", "installment_id", inst.ID, "vehicle_id", inst.VehicleID)
		}
	})
	bus.Subscribe(events.ClaimUpdated, func(ev events.Event) {
		if claim, ok := ev.Payload.(*domain.Incident); ok {
			logger.Info("Claim reimbursement updated", "incident_id", claim.ID, "payment_status", string(claim.PaymentStatus))
		}
	})
	bus.Subscribe(events.ExpensePaid, func(ev events.Event) {
		if e, ok := ev.Payload.(*domain.Expense); ok {
			logger.Info("Expense settled", "expense_id", e.ID, "title", e.Title)
		}
	})

	// Initialize Document Storage
	documentStore, err := storage.NewLocalDocumentStore(cfg.Storage.BaseURL, cfg.Storage.Dir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Document storage ready", "dir", cfg.Storage.Dir)

	// Initialize HTTP handlers
	handlers := httpapi.NewHandlers(availabilitySvc, installmentSvc, expenseSvc, claimSvc, financialSvc, noteSvc, clk)
	router := httpapi.NewRouter(handlers)
	httpapi.RegisterDocumentRoutes(router, documentStore)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
