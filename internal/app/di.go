// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/broadcast"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/database"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/http"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/metrics"
	outboxRepository "github.com/adamdarley-hub/RealSMPortal-sub003/internal/outbox/repository"
	outboxUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/outbox/usecase"
	reconciliationHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/http"
	reconciliationUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/usecase"
	recordsHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/http"
	recordsRepository "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/repository"
	recordsUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/usecase"
	remoteconfigHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/http"
	remoteconfigRepository "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/repository"
	remoteconfigService "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/service"
	remoteconfigUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/usecase"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/servemanager"
	syncHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/http"
	syncUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	keyProtector    remoteconfigService.KeyProtector
	hub             *broadcast.Hub

	// Remote configuration
	overrideStore  *remoteconfigUsecase.MemoryOverrideStore
	credentialRepo remoteconfigUsecase.CredentialRepository
	resolver       remoteconfigUsecase.Resolver

	// Remote gateway
	serveManagerClient *servemanager.Client

	// Repositories
	invoiceRepo recordsUsecase.InvoiceRepository
	jobRepo     recordsUsecase.JobRepository
	outboxRepo  outboxUsecase.OutboxEventRepository

	// Use cases
	recordsUseCase        recordsUsecase.UseCase
	outboxUseCase         outboxUsecase.UseCase
	syncEngine            *syncUsecase.Engine
	reconciliationUseCase reconciliationUsecase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                        sync.Mutex
	loggerInit                sync.Once
	dbInit                    sync.Once
	txManagerInit             sync.Once
	metricsProviderInit       sync.Once
	businessMetricsInit       sync.Once
	keyProtectorInit          sync.Once
	hubInit                   sync.Once
	overrideStoreInit         sync.Once
	credentialRepoInit        sync.Once
	resolverInit              sync.Once
	serveManagerClientInit    sync.Once
	invoiceRepoInit           sync.Once
	jobRepoInit               sync.Once
	outboxRepoInit            sync.Once
	recordsUseCaseInit        sync.Once
	outboxUseCaseInit         sync.Once
	syncEngineInit            sync.Once
	reconciliationUseCaseInit sync.Once
	httpServerInit            sync.Once
	metricsServerInit         sync.Once
	initErrors                map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled a no-op recorder is returned so callers never branch.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// KeyProtector returns the credential key protector, or nil when no KMS key
// URI is configured (stored API keys are then treated as plaintext).
func (c *Container) KeyProtector() (remoteconfigService.KeyProtector, error) {
	var err error
	c.keyProtectorInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}
		c.keyProtector, err = remoteconfigService.NewKeyProtector(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			c.initErrors["keyProtector"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyProtector"]; exists {
		return nil, storedErr
	}
	return c.keyProtector, nil
}

// Hub returns the in-memory event broadcaster.
func (c *Container) Hub() *broadcast.Hub {
	c.hubInit.Do(func() {
		c.hub = broadcast.NewHub(c.Logger())
	})
	return c.hub
}

// OverrideStore returns the runtime credential override store.
func (c *Container) OverrideStore() *remoteconfigUsecase.MemoryOverrideStore {
	c.overrideStoreInit.Do(func() {
		c.overrideStore = remoteconfigUsecase.NewMemoryOverrideStore()
	})
	return c.overrideStore
}

// CredentialRepository returns the stored credential repository.
func (c *Container) CredentialRepository() (remoteconfigUsecase.CredentialRepository, error) {
	var err error
	c.credentialRepoInit.Do(func() {
		c.credentialRepo, err = c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// Resolver returns the tiered capability resolver.
func (c *Container) Resolver() (remoteconfigUsecase.Resolver, error) {
	var err error
	c.resolverInit.Do(func() {
		c.resolver, err = c.initResolver()
		if err != nil {
			c.initErrors["resolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.resolver, nil
}

// ServeManagerClient returns the remote gateway client.
func (c *Container) ServeManagerClient() (*servemanager.Client, error) {
	var err error
	c.serveManagerClientInit.Do(func() {
		c.serveManagerClient, err = c.initServeManagerClient()
		if err != nil {
			c.initErrors["serveManagerClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["serveManagerClient"]; exists {
		return nil, storedErr
	}
	return c.serveManagerClient, nil
}

// InvoiceRepository returns the cached invoice repository.
func (c *Container) InvoiceRepository() (recordsUsecase.InvoiceRepository, error) {
	var err error
	c.invoiceRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB()
		if err != nil {
			c.initErrors["invoiceRepo"] = err
			return
		}
		c.invoiceRepo = recordsRepository.NewPostgreSQLInvoiceRepository(db)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["invoiceRepo"]; exists {
		return nil, storedErr
	}
	return c.invoiceRepo, nil
}

// JobRepository returns the cached job repository.
func (c *Container) JobRepository() (recordsUsecase.JobRepository, error) {
	var err error
	c.jobRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB()
		if err != nil {
			c.initErrors["jobRepo"] = err
			return
		}
		c.jobRepo = recordsRepository.NewPostgreSQLJobRepository(db)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["jobRepo"]; exists {
		return nil, storedErr
	}
	return c.jobRepo, nil
}

// OutboxRepository returns the outbox event repository instance.
func (c *Container) OutboxRepository() (outboxUsecase.OutboxEventRepository, error) {
	var err error
	c.outboxRepoInit.Do(func() {
		var db *sql.DB
		db, err = c.DB()
		if err != nil {
			c.initErrors["outboxRepo"] = err
			return
		}
		c.outboxRepo = outboxRepository.NewPostgreSQLOutboxEventRepository(db)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepo"]; exists {
		return nil, storedErr
	}
	return c.outboxRepo, nil
}

// RecordsUseCase returns the cached records use case instance.
func (c *Container) RecordsUseCase() (recordsUsecase.UseCase, error) {
	var err error
	c.recordsUseCaseInit.Do(func() {
		c.recordsUseCase, err = c.initRecordsUseCase()
		if err != nil {
			c.initErrors["recordsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordsUseCase"]; exists {
		return nil, storedErr
	}
	return c.recordsUseCase, nil
}

// OutboxUseCase returns the outbox dispatcher use case instance.
func (c *Container) OutboxUseCase() (outboxUsecase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

// SyncEngine returns the polling sync engine instance.
func (c *Container) SyncEngine() (*syncUsecase.Engine, error) {
	var err error
	c.syncEngineInit.Do(func() {
		c.syncEngine, err = c.initSyncEngine()
		if err != nil {
			c.initErrors["syncEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["syncEngine"]; exists {
		return nil, storedErr
	}
	return c.syncEngine, nil
}

// ReconciliationUseCase returns the payment reconciliation use case instance.
func (c *Container) ReconciliationUseCase() (reconciliationUsecase.UseCase, error) {
	var err error
	c.reconciliationUseCaseInit.Do(func() {
		c.reconciliationUseCase, err = c.initReconciliationUseCase()
		if err != nil {
			c.initErrors["reconciliationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["reconciliationUseCase"]; exists {
		return nil, storedErr
	}
	return c.reconciliationUseCase, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}

		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}

		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Stop background polling before tearing down its dependencies
	if c.syncEngine != nil {
		c.syncEngine.StopPolling()
	}

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Close event hub so SSE subscribers drain
	if c.hub != nil {
		c.hub.Close()
	}

	// Flush metrics pipeline if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close the secrets keeper if initialized
	if c.keyProtector != nil {
		if err := c.keyProtector.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("key protector close: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NoopBusinessMetrics(), nil
	}

	business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return business, nil
}

// initCredentialRepository creates the stored credential repository.
func (c *Container) initCredentialRepository() (remoteconfigUsecase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}
	return remoteconfigRepository.NewPostgreSQLCredentialRepository(db), nil
}

// initResolver creates the tiered capability resolver.
func (c *Container) initResolver() (remoteconfigUsecase.Resolver, error) {
	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for resolver: %w", err)
	}

	protector, err := c.KeyProtector()
	if err != nil {
		return nil, fmt.Errorf("failed to get key protector for resolver: %w", err)
	}

	// A nil protector interface must stay nil inside the resolver, so the
	// concrete value is only passed when present.
	var usecaseProtector remoteconfigUsecase.KeyProtector
	if protector != nil {
		usecaseProtector = protector
	}

	return remoteconfigUsecase.NewCapabilityResolver(
		repo,
		usecaseProtector,
		c.OverrideStore(),
		c.Logger(),
	), nil
}

// initServeManagerClient creates the remote gateway client.
func (c *Container) initServeManagerClient() (*servemanager.Client, error) {
	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for servemanager client: %w", err)
	}
	return servemanager.NewClient(resolver, c.Logger()), nil
}

// initRecordsUseCase creates the records use case with its repositories.
func (c *Container) initRecordsUseCase() (recordsUsecase.UseCase, error) {
	invoiceRepo, err := c.InvoiceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice repository for records use case: %w", err)
	}

	jobRepo, err := c.JobRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get job repository for records use case: %w", err)
	}

	return recordsUsecase.NewRecordsUseCase(invoiceRepo, jobRepo), nil
}

// initOutboxUseCase creates the outbox dispatcher with all its dependencies.
func (c *Container) initOutboxUseCase() (outboxUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	useCaseConfig := outboxUsecase.Config{
		Interval:   c.config.OutboxInterval,
		BatchSize:  c.config.OutboxBatchSize,
		MaxRetries: c.config.OutboxMaxRetries,
	}

	return outboxUsecase.NewOutboxUseCase(useCaseConfig, txManager, outboxRepo, c.Hub(), c.Logger()), nil
}

// initSyncEngine creates the polling engine and the syncer it drives.
func (c *Container) initSyncEngine() (*syncUsecase.Engine, error) {
	client, err := c.ServeManagerClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get servemanager client for sync engine: %w", err)
	}

	invoiceRepo, err := c.InvoiceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice repository for sync engine: %w", err)
	}

	jobRepo, err := c.JobRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get job repository for sync engine: %w", err)
	}

	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for sync engine: %w", err)
	}

	business, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for sync engine: %w", err)
	}

	syncer := syncUsecase.NewSyncer(client, invoiceRepo, jobRepo, c.Logger())

	hub := c.Hub()
	onDataUpdate := func() {
		hub.Broadcast(broadcast.Event{
			Type: "records.updated",
			Data: map[string]string{"resource": "records"},
		})
	}

	engineConfig := syncUsecase.Config{
		Interval: c.config.SyncInterval,
		Warmup:   c.config.SyncWarmup,
		Timeout:  c.config.SyncTimeout,
	}

	return syncUsecase.NewEngine(engineConfig, syncer, resolver, onDataUpdate, business, c.Logger()), nil
}

// initReconciliationUseCase creates the reconciliation workflow with all its dependencies.
func (c *Container) initReconciliationUseCase() (reconciliationUsecase.UseCase, error) {
	client, err := c.ServeManagerClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get servemanager client for reconciliation use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for reconciliation use case: %w", err)
	}

	business, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for reconciliation use case: %w", err)
	}

	return reconciliationUsecase.NewReconciliationUseCase(
		client,
		outboxRepo,
		c.Hub(),
		business,
		c.Logger(),
	), nil
}

// initHTTPServer creates the HTTP server with all its handlers.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	recordsUseCase, err := c.RecordsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get records use case for http server: %w", err)
	}

	engine, err := c.SyncEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get sync engine for http server: %w", err)
	}

	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for http server: %w", err)
	}

	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for http server: %w", err)
	}

	protector, err := c.KeyProtector()
	if err != nil {
		return nil, fmt.Errorf("failed to get key protector for http server: %w", err)
	}
	var usecaseProtector remoteconfigUsecase.KeyProtector
	if protector != nil {
		usecaseProtector = protector
	}

	reconciliation, err := c.ReconciliationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation use case for http server: %w", err)
	}

	handlers := http.Handlers{
		Records: recordsHttp.NewRecordsHandler(recordsUseCase, logger),
		Sync:    syncHttp.NewSyncHandler(engine, logger),
		Credentials: remoteconfigHttp.NewCredentialHandler(
			resolver,
			c.OverrideStore(),
			credentialRepo,
			usecaseProtector,
			logger,
		),
		Webhook: reconciliationHttp.NewWebhookHandler(reconciliation, c.config.StripeWebhookSecret, logger),
		Events:  broadcast.NewSSEHandler(c.Hub(), logger),
	}

	return http.NewServer(c.config, logger, handlers), nil
}
