package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	catalogapp "github.com/erp/backoffice/internal/application/catalog"
	documentapp "github.com/erp/backoffice/internal/application/document"
	financeapp "github.com/erp/backoffice/internal/application/finance"
	identityapp "github.com/erp/backoffice/internal/application/identity"
	partnerapp "github.com/erp/backoffice/internal/application/partner"
	reportapp "github.com/erp/backoffice/internal/application/report"
	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/infrastructure/session"
	"github.com/erp/backoffice/internal/infrastructure/storage"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/erp/backoffice/internal/infrastructure/xts"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/erp/backoffice/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting back-office gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("endpoint", cfg.XTS.Endpoint),
	)

	ctx := context.Background()

	// Telemetry
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Accounting service client
	xtsMetrics, err := xts.NewMetrics(registry)
	if err != nil {
		log.Fatal("Failed to register upstream metrics", zap.Error(err))
	}
	client, err := xts.NewClient(xts.Config{
		Endpoint:  cfg.XTS.Endpoint,
		InfoBase:  cfg.XTS.InfoBase,
		Timeout:   cfg.XTS.Timeout,
		UserAgent: cfg.XTS.UserAgent,
	}, xts.WithMetrics(xtsMetrics))
	if err != nil {
		log.Fatal("Failed to create accounting service client", zap.Error(err))
	}

	// Initialize repositories
	orderRepo := persistence.NewXTSOrderRepository(client)
	orderStateRepo := persistence.NewXTSOrderStateRepository(client)
	cashReceiptRepo := persistence.NewXTSCashReceiptRepository(client)
	transferReceiptRepo := persistence.NewXTSTransferReceiptRepository(client)
	supplierInvoiceRepo := persistence.NewXTSSupplierInvoiceRepository(client)
	currencyRepo := persistence.NewXTSCurrencyRepository(client)
	productRepo := persistence.NewXTSProductRepository(client)
	employeeRepo := persistence.NewXTSEmployeeRepository(client)
	counterpartyRepo := persistence.NewXTSCounterpartyRepository(client)
	authenticator := persistence.NewXTSAuthenticator(client)
	fileSource := persistence.NewXTSFileSource(client)

	// Sessions and tokens
	sessionStore, err := session.NewStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to open session store", zap.Error(err), zap.String("store", cfg.Session.Store))
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			log.Error("Error closing session store", zap.Error(err))
		}
	}()
	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		log.Fatal("Failed to create session codec", zap.Error(err))
	}
	sessions := session.NewManager(codec, sessionStore, cfg.Session.TTL)
	jwtService := auth.NewJWTService(cfg.JWT)

	checks := map[string]handler.Pinger{
		"xts":      client,
		"sessions": sessionStore,
	}

	// Print form archive
	var objects documentapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Storage bucket check failed", zap.Error(err))
		}
		objects = s3Storage
		checks["storage"] = s3Storage
		log.Info("Print form archive enabled", zap.String("bucket", s3Storage.GetBucket()))
	}

	// Initialize services
	authService := identityapp.NewAuthService(authenticator, sessions, jwtService, log)
	orderService := tradeapp.NewOrderService(orderRepo, orderStateRepo)
	cashReceiptService := financeapp.NewCashReceiptService(cashReceiptRepo)
	transferReceiptService := financeapp.NewTransferReceiptService(transferReceiptRepo)
	supplierInvoiceService := financeapp.NewSupplierInvoiceService(supplierInvoiceRepo)
	currencyService := catalogapp.NewCurrencyService(currencyRepo)
	productService := catalogapp.NewProductService(productRepo)
	employeeService := identityapp.NewEmployeeService(employeeRepo)
	counterpartyService := partnerapp.NewCounterpartyService(counterpartyRepo)
	overviewService := reportapp.NewOverviewService(orderRepo, cashReceiptRepo, transferReceiptRepo, supplierInvoiceRepo,
		reportapp.OverviewConfig{
			MaxRecords:   cfg.Overview.MaxRecords,
			TopCustomers: cfg.Overview.TopCustomers,
			PageSize:     cfg.Overview.PageSize,
		})
	fileService := documentapp.NewFileService(fileSource, objects, documentapp.FileServiceConfig{
		KeyPrefix:      cfg.Storage.KeyPrefix,
		DownloadExpiry: cfg.Storage.PresignExpiry,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(cfg.App.Version, checks)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:          log,
		ServiceName:     telemetryCfg.ServiceName,
		Tracing:         tracerProvider.IsEnabled(),
		Meter:           meterProvider,
		CORS:            corsCfg,
		Security:        securityCfg,
		MaxBodySize:     cfg.HTTP.MaxBodySize,
		DefaultLanguage: i18n.Parse(cfg.I18n.DefaultLanguage),
		TrustedProxies:  cfg.HTTP.TrustedProxies,
		System:          systemHandler,
		Gatherer:        registry,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Rate limiting: sign-in per client IP, everything else per session
	var (
		signInMiddleware    []gin.HandlerFunc
		protectedMiddleware = []gin.HandlerFunc{middleware.SessionAuth(middleware.SessionAuthConfig{
			Tokens:   jwtService,
			Sessions: sessions,
			Logger:   log,
		})}
		limiters []*middleware.RateLimiter
	)
	if cfg.HTTP.RateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		apiLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, authLimiter, apiLimiter)
		signInMiddleware = append(signInMiddleware, middleware.RateLimit(authLimiter))
		protectedMiddleware = append(protectedMiddleware, middleware.RateLimitByKey(apiLimiter, middleware.SessionKeyFunc))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Int("sign_in_requests", cfg.HTTP.AuthRateLimitRequests),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"), router.WithMiddleware(protectedMiddleware...))
	r.RegisterPublic(router.RouteRegistrarFunc(authHandler.RegisterPublicRoutes), signInMiddleware...)
	r.Register(authHandler).
		Register(handler.NewOrderHandler(orderService, 0)).
		Register(handler.NewCashReceiptHandler(cashReceiptService)).
		Register(handler.NewTransferReceiptHandler(transferReceiptService)).
		Register(handler.NewSupplierInvoiceHandler(supplierInvoiceService)).
		Register(handler.NewCurrencyHandler(currencyService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewEmployeeHandler(employeeService)).
		Register(handler.NewCounterpartyHandler(counterpartyService)).
		Register(handler.NewOverviewHandler(overviewService)).
		Register(handler.NewFileHandler(fileService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for _, l := range limiters {
		l.Close()
	}
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := meterProvider.Shutdown(flushCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(flushCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited")
}
