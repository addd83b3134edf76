package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	appcatalog "github.com/clinisupply/backend/internal/application/catalog"
	appfinance "github.com/clinisupply/backend/internal/application/finance"
	"github.com/clinisupply/backend/internal/application/guard"
	appidentity "github.com/clinisupply/backend/internal/application/identity"
	appinv "github.com/clinisupply/backend/internal/application/inventory"
	apppartner "github.com/clinisupply/backend/internal/application/partner"
	appsched "github.com/clinisupply/backend/internal/application/scheduling"
	apptrade "github.com/clinisupply/backend/internal/application/trade"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/infrastructure/auth"
	"github.com/clinisupply/backend/internal/infrastructure/config"
	"github.com/clinisupply/backend/internal/infrastructure/logger"
	"github.com/clinisupply/backend/internal/infrastructure/persistence"
	"github.com/clinisupply/backend/internal/infrastructure/persistence/clinicscope"
	"github.com/clinisupply/backend/internal/infrastructure/telemetry"
	"github.com/clinisupply/backend/internal/interfaces/http/handler"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/clinisupply/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting clinisupply backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing (no-op when disabled in config)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.OTLPEndpoint,
		SamplingRatio:     cfg.Telemetry.SampleRatio,
		ServiceName:       cfg.App.Name,
		Insecure:          !cfg.IsProduction(),
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database, with the request-scoped clinic filter installed as a GORM
	// callback. The callback is a safety net: repositories scope queries
	// explicitly, and the callback catches anything that slips through.
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
	clinicscope.EnableAutoClinicFilter(db.DB, true)
	if cfg.Telemetry.Enabled {
		if err := telemetry.InstrumentGorm(db.DB, log); err != nil {
			log.Fatal("Failed to instrument database", zap.Error(err))
		}
	}
	log.Info("Database connected")

	// Redis backs the token blacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	cancelPing()
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	// Isolation policy registry must cover every resource kind before the
	// server accepts traffic.
	registry := isolation.NewRegistry()
	if err := registry.Validate(); err != nil {
		log.Fatal("Incomplete isolation policy registry", zap.Error(err))
	}
	accessGuard := guard.New(registry)

	// Repositories
	clinicRepo := persistence.NewGormClinicRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	payableRepo := persistence.NewGormAccountPayableRepository(db.DB)
	receivableRepo := persistence.NewGormAccountReceivableRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	inventoryTxScope := persistence.NewGormTransactionScope(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)

	// Application services
	authService := appidentity.NewAuthService(userRepo, clinicRepo, jwtService, blacklist)
	clinicService := appidentity.NewClinicService(clinicRepo)
	supplierService := apppartner.NewSupplierService(supplierRepo, accessGuard)
	productService := appcatalog.NewProductService(productRepo, accessGuard)
	categoryService := appcatalog.NewCategoryService(categoryRepo, accessGuard)
	itemService := appinv.NewItemService(itemRepo, accessGuard)
	movementService := appinv.NewMovementService(movementRepo, inventoryTxScope, accessGuard)
	orderService := apptrade.NewOrderService(orderRepo, supplierRepo, accessGuard)
	transactionService := appfinance.NewTransactionService(transactionRepo, clinicRepo, accessGuard)
	invoiceService := appfinance.NewInvoiceService(invoiceRepo, supplierRepo, accessGuard)
	payableService := appfinance.NewPayableService(payableRepo, accessGuard)
	receivableService := appfinance.NewReceivableService(receivableRepo, accessGuard)
	appointmentService := appsched.NewAppointmentService(appointmentRepo, accessGuard)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.App.Name))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Every protected route runs behind token validation plus the access
	// context resolver. Role and clinic binding come from storage on each
	// request, so a stale token cannot retain revoked privileges.
	protected := []gin.HandlerFunc{
		middleware.Authenticate(middleware.AuthConfig{JWT: jwtService, Blacklist: blacklist}),
		middleware.ResolveAccessContext(userRepo),
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db.DB, version))
	r.Register(handler.NewAuthHandler(authService, protected...))
	r.RegisterProtected(handler.NewClinicHandler(clinicService), protected...)
	r.RegisterProtected(handler.NewSupplierHandler(supplierService), protected...)
	r.RegisterProtected(handler.NewCatalogHandler(productService, categoryService), protected...)
	r.RegisterProtected(handler.NewInventoryHandler(itemService, movementService), protected...)
	r.RegisterProtected(handler.NewOrderHandler(orderService), protected...)
	r.RegisterProtected(handler.NewFinanceHandler(transactionService, invoiceService, payableService, receivableService), protected...)
	r.RegisterProtected(handler.NewAppointmentHandler(appointmentService), protected...)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
