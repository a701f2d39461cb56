// cmd/quote-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"winhouse-quote/internal/catalog"
	"winhouse-quote/internal/common/aws"
	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/common/database"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/observability"
	"winhouse-quote/internal/common/zoho"
	"winhouse-quote/internal/leadcapture"
	"winhouse-quote/internal/pricing"
	"winhouse-quote/internal/records"
	"winhouse-quote/internal/server"
	"winhouse-quote/internal/session"
	"winhouse-quote/pkg/catalogfile"

	emailgenerate "winhouse-quote/internal/handlers/ai/email-generate"
	emailnotify "winhouse-quote/internal/handlers/communication/email-notify"
	leadsync "winhouse-quote/internal/handlers/crm/lead-sync"
	quotedocument "winhouse-quote/internal/handlers/document/quote-document"
	eventrelay "winhouse-quote/internal/handlers/relay/event-relay"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting quote server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics exporter unavailable", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Catalog & pricing ---
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalogfile.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			zapLog.Fatal("catalog load failed", zap.Error(err))
		}
		zapLog.Info("Catalog loaded from file", zap.String("path", cfg.Catalog.Path))
	}

	tiers := make([]pricing.Tier, 0, len(cfg.Pricing.DiscountTiers))
	for _, t := range cfg.Pricing.DiscountTiers {
		tiers = append(tiers, pricing.Tier{MinModules: t.MinModules, Percent: t.Percent})
	}
	calculator, err := pricing.NewCalculator(tiers)
	if err != nil {
		zapLog.Fatal("invalid discount tiers", zap.Error(err))
	}

	// --- Init Redis with retry ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	sessions := session.NewRedisStore(redis.Client, cfg.Session.KeyPrefix, config.GetDuration(cfg.Session.TTL))

	// --- Init PostgreSQL with retry (optional) ---
	var recordStore leadcapture.RecordStore
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		repo := records.NewRepository(pg.DB, log)
		if err := repo.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("postgres schema setup failed", zap.Error(err))
		}
		recordStore = repo
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Init Elasticsearch with retry (optional) ---
	var indexer eventrelay.EventIndexer
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		if err := esClient.EnsureIndex(ctx, cfg.Database.Elasticsearch.EventIndex, eventrelay.IndexMapping); err != nil {
			zapLog.Fatal("event index setup failed", zap.Error(err))
		}
		indexer = esClient
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init External Service Clients ---
	var sesClient aws.SESAPI
	if cfg.Integrations.AWS.SES.Enabled {
		if sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region); err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}
	var snsClient aws.SNSAPI
	if cfg.Integrations.AWS.SNS.Enabled {
		if snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region); err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	zohoClient := zoho.NewCRMClient(
		cfg.Integrations.Zoho.BaseURL,
		cfg.Integrations.Zoho.AuthToken,
		config.GetDuration(cfg.Integrations.Zoho.Timeout),
	)

	zapLog.Info("All external service clients initialized")

	// --- Collaborator handlers ---
	relay, err := eventrelay.NewHandler(eventrelay.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
		Indexer:   indexer,
	})
	if err != nil {
		zapLog.Fatal("failed to create event-relay handler", zap.Error(err))
	}

	notify, err := emailnotify.NewHandler(emailnotify.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
		SESClient: sesClient,
		SNSClient: snsClient,
	})
	if err != nil {
		zapLog.Fatal("failed to create email-notify handler", zap.Error(err))
	}

	crm, err := leadsync.NewHandler(leadsync.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
		Client:    zohoClient,
	})
	if err != nil {
		zapLog.Fatal("failed to create lead-sync handler", zap.Error(err))
	}

	emails, err := emailgenerate.NewHandler(emailgenerate.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create email-generate handler", zap.Error(err))
	}

	documents, err := quotedocument.NewHandler(quotedocument.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
	})
	if err != nil {
		zapLog.Fatal("failed to create quote-document handler", zap.Error(err))
	}

	zapLog.Info("Collaborators configured",
		zap.String(relay.GetTaskType(), fmt.Sprintf("sheets=%t index=%t", relay.GetConfig().SheetsWebhookURL != "", relay.GetConfig().IndexEvents)),
		zap.String(notify.GetTaskType(), fmt.Sprintf("enabled=%t sms=%t", notify.GetConfig().Enabled, notify.GetConfig().SMSEnabled)),
		zap.String(crm.GetTaskType(), fmt.Sprintf("enabled=%t", crm.GetConfig().Enabled)),
		zap.String(emails.GetTaskType(), fmt.Sprintf("enabled=%t model=%s", emails.GetConfig().Enabled, emails.GetConfig().Model)),
		zap.String(documents.GetTaskType(), fmt.Sprintf("vat=%d%%", documents.GetConfig().VATPercent)),
	)

	deps := leadcapture.Dependencies{
		Logger:   log,
		Relay:    relay,
		Notifier: notify,
		CRM:      crm,
	}
	if recordStore != nil {
		deps.Records = recordStore
	}
	dispatcher := leadcapture.NewDispatcher(deps, config.GetDuration(cfg.Server.FanoutTimeout))

	srv := server.New(server.Options{
		Logger:        log,
		Catalog:       cat,
		Calculator:    calculator,
		Sessions:      sessions,
		Dispatcher:    dispatcher,
		Observability: obs,
		Relay:         relay,
		Notify:        notify,
		Emails:        emails,
		Documents:     documents,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	dispatcher.Wait()

	zapLog.Info("Quote server stopped gracefully")
}
