package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contractapp "github.com/backoffice/backend/internal/application/contract"
	financeapp "github.com/backoffice/backend/internal/application/finance"
	identityapp "github.com/backoffice/backend/internal/application/identity"
	partnerapp "github.com/backoffice/backend/internal/application/partner"
	"github.com/backoffice/backend/internal/domain/contract"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/identity"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"github.com/backoffice/backend/internal/infrastructure/logger"
	"github.com/backoffice/backend/internal/infrastructure/notifier"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/backoffice/backend/internal/interfaces/http/handler"
	"github.com/backoffice/backend/internal/interfaces/http/middleware"
	"github.com/backoffice/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting backoffice backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	hub := notifier.NewHub(
		notifier.WithBufferSize(cfg.Notifier.BufferSize),
		notifier.WithLogger(log),
	)
	defer hub.Close()

	// Repositories
	supplierRepo := persistence.NewResourceRepository[partner.Supplier](db.DB, partner.SupplierDescriptor)
	customerRepo := persistence.NewResourceRepository[partner.Customer](db.DB, partner.CustomerDescriptor)
	roleRepo := persistence.NewResourceRepository[identity.UserRole](db.DB, identity.UserRoleDescriptor)
	expenseRepo := persistence.NewResourceRepository[finance.Expense](db.DB, finance.ExpenseDescriptor)
	incomeRepo := persistence.NewResourceRepository[finance.OtherIncome](db.DB, finance.OtherIncomeDescriptor)
	journalRepo := persistence.NewResourceRepository[finance.JournalEntry](db.DB, finance.JournalEntryDescriptor)
	contractRepo := persistence.NewResourceRepository[contract.InstallmentContract](db.DB, contract.ContractDescriptor)
	adjustmentRepo := persistence.NewResourceRepository[contract.ContractAdjustment](db.DB, contract.AdjustmentDescriptor)
	paymentRepo := persistence.NewResourceRepository[contract.PaymentLog](db.DB, contract.PaymentLogDescriptor)

	// Services
	supplierSvc := partnerapp.NewSupplierService(supplierRepo, hub, log)
	customerSvc := partnerapp.NewCustomerService(customerRepo, hub, log)
	roleSvc := identityapp.NewRoleService(roleRepo, hub, log)
	expenseSvc := financeapp.NewExpenseService(expenseRepo, hub, log)
	incomeSvc := financeapp.NewIncomeService(db.DB, incomeRepo, hub, log)
	journalSvc := financeapp.NewJournalEntryService(journalRepo, hub, log)
	contractSvc := contractapp.NewContractService(contractRepo, customerRepo, hub, log)
	adjustmentSvc := contractapp.NewAdjustmentService(adjustmentRepo, contractRepo, hub, log)
	paymentSvc := contractapp.NewPaymentLogService(paymentRepo, contractRepo, hub, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db, log))
	r.Register(handler.NewResourceHandler(supplierSvc, log))
	r.Register(handler.NewResourceHandler(customerSvc, log))
	r.Register(handler.NewResourceHandler(roleSvc, log))
	r.Register(handler.NewExpenseHandler(expenseSvc, log))
	r.Register(handler.NewIncomeHandler(incomeSvc, log))
	r.Register(handler.NewResourceHandler(journalSvc, log))
	r.Register(handler.NewResourceHandler(contractSvc, log))
	r.Register(handler.NewResourceHandler(adjustmentSvc, log))
	r.Register(handler.NewResourceHandler(paymentSvc, log))
	r.Register(handler.NewEventsHandler(hub, log,
		handler.WithHeartbeat(cfg.Notifier.HeartbeatInterval)))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
