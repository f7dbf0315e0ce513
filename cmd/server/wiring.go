package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"bkap/internal/admin"
	licenseHandler "bkap/internal/license/handler"
	licenseMetrics "bkap/internal/license/metrics"
	licenseService "bkap/internal/license/service"
	"bkap/internal/marketplace/dashboard"
	vendorHandler "bkap/internal/marketplace/handler"
	"bkap/internal/marketplace/registry"
	"bkap/internal/marketplace/session"
	noticeHandler "bkap/internal/notice/handler"
	noticeMetrics "bkap/internal/notice/metrics"
	"bkap/internal/notice/publisher"
	noticeService "bkap/internal/notice/service"
	noticeStore "bkap/internal/notice/store"
	"bkap/internal/options"
	"bkap/internal/platform/config"
	"bkap/internal/platform/database"
	"bkap/internal/platform/health"
	"bkap/internal/platform/hooks"
	"bkap/internal/platform/i18n"
	"bkap/internal/platform/kafka/producer"
	"bkap/internal/platform/redis"
	"bkap/internal/updater"
	"bkap/internal/updater/edd"
	"bkap/migrations"
	"bkap/pkg/platform/circuit"
	adminmw "bkap/pkg/platform/middleware/admin"
	"bkap/pkg/platform/middleware/auth"
	"bkap/pkg/platform/middleware/metadata"
	request "bkap/pkg/platform/middleware/request"
	"bkap/pkg/platform/middleware/requesttime"
	"bkap/pkg/secrets"
)

type app struct {
	router   http.Handler
	pool     *database.Pool
	redis    *redis.Client
	producer *producer.Producer
	edd      *edd.Client
}

func (a *app) close(log *slog.Logger) {
	if a.edd != nil {
		a.edd.Wait()
	}
	if a.producer != nil {
		if err := a.producer.Close(5 * time.Second); err != nil {
			log.Warn("kafka producer close failed", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn("redis close failed", "error", err)
		}
	}
	if a.pool != nil {
		if err := a.pool.Close(); err != nil {
			log.Warn("database close failed", "error", err)
		}
	}
}

// build wires every component. Postgres, Redis and Kafka are optional; the
// in-memory stores are used when they are not configured.
func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	a := &app{}
	reg := prometheus.DefaultRegisterer
	var reader *licenseService.Reader
	checks := health.New(cfg.Environment,
		health.WithTimeout(cfg.HealthTimeout),
		health.WithLicense(func(ctx context.Context) bool {
			return reader != nil && reader.IsLicenseActive(ctx, cfg.License.StatusOption)
		}),
	)

	var optionStore options.Store = options.NewInMemory(nil)
	pool, err := database.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		if err := pool.Migrate(ctx, migrations.FS); err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		a.pool = pool
		optionStore = options.NewPostgres(pool.DB())
		checks.RegisterCheck("postgres", pool.Health)
		reg.MustRegister(pool.Collector())
	}

	var dismissals noticeService.Store = noticeStore.NewInMemory()
	rc, err := redis.New(cfg.Redis)
	if err != nil {
		a.close(log)
		return nil, err
	}
	if rc != nil {
		a.redis = rc
		dismissals = noticeStore.NewRedis(rc.Client)
		checks.RegisterCheck("redis", rc.Health)
		reg.MustRegister(rc.Collector())
	}

	catalog, err := i18n.Default()
	if err != nil {
		a.close(log)
		return nil, fmt.Errorf("load translations: %w", err)
	}
	translator := catalog.Translator(cfg.License.TextDomain, cfg.License.Locale)
	bus := hooks.New(log)

	// License notice and administration.
	lm := licenseMetrics.New(reg)
	reader = licenseService.NewReader(optionStore, log)
	licenseService.NewNoticeController(reader, licenseService.NoticeConfig{
		PluginName:       cfg.License.PluginName,
		StatusOption:     cfg.License.StatusOption,
		PageURL:          cfg.License.PageURL,
		SettingsScreenID: cfg.License.SettingsScreenID,
	}, translator, log, licenseService.WithNoticeMetrics(lm)).Register(bus)

	breaker := circuit.New("edd",
		circuit.WithFailureThreshold(5),
		circuit.WithCooldown(30*time.Second),
		circuit.WithStateChange(func(name string, to circuit.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "state", to.String())
		}),
	)
	a.edd = edd.New(edd.Config{
		StoreURL: cfg.License.StoreURL,
		ItemName: cfg.License.ItemName,
		SiteURL:  cfg.SiteURL,
		Timeout:  cfg.License.RemoteTimeout,
	}, log, edd.WithBreaker(breaker), edd.WithTracer(otel.Tracer("bkap/updater/edd")))

	manager := licenseService.NewManager(optionStore, a.edd, licenseService.ManagerConfig{
		PluginName:   cfg.License.PluginName,
		KeyOption:    cfg.License.KeyOption,
		StatusOption: cfg.License.StatusOption,
	}, log, licenseService.WithManagerMetrics(lm), licenseService.WithUpdates(a.edd))

	updater.New(optionStore, updater.Config{
		StoreURL:  cfg.License.StoreURL,
		KeyOption: cfg.License.KeyOption,
		Version:   cfg.License.Version,
		ItemName:  cfg.License.ItemName,
		Author:    cfg.License.Author,
	}, log, updater.WithUpdater(a.edd)).Bootstrap(ctx)

	// Dismissible notices.
	nm := noticeMetrics.New(reg)
	noticeOpts := []noticeService.Option{noticeService.WithMetrics(nm)}
	if cfg.Kafka.Brokers != "" {
		prod, err := producer.New(cfg.Kafka, log)
		if err != nil {
			a.close(log)
			return nil, err
		}
		a.producer = prod
		noticeOpts = append(noticeOpts, noticeService.WithPublisher(publisher.NewKafka(prod, cfg.Kafka.Topic)))
		checks.RegisterCheck("kafka", prod.Health)
	}
	notices := noticeService.New(dismissals, log, noticeOpts...)
	noticeService.NewRenderer(notices, translator, nm, log).Register(bus)

	// Vendor dashboard.
	endpoints, err := registry.FromFile(cfg.Vendor.CatalogPath, cfg.Vendor.DashboardBaseURL)
	if err != nil {
		a.close(log)
		return nil, err
	}
	renderer, err := dashboard.NewRenderer()
	if err != nil {
		a.close(log)
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	sessions := session.New(cfg.Vendor.JWTSigningKey, cfg.Vendor.JWTIssuer, cfg.Vendor.TokenTTL)

	trusted, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		a.close(log)
		return nil, err
	}

	adminToken := secrets.AdminToken{Plain: cfg.AdminToken, Hash: cfg.AdminTokenHash}
	if !adminToken.Configured() {
		log.Warn("no admin token configured, admin routes will reject every request")
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(metadata.ClientInfo(trusted))
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(log))
	r.Use(request.Latency(request.NewMetrics(reg)))
	r.Use(request.Timeout(cfg.RequestTimeout))
	r.Use(request.BodyLimit(cfg.MaxBodyBytes))

	checks.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(adminToken, log))
		r.Group(func(r chi.Router) {
			r.Use(request.ContentTypeForm)
			noticeHandler.New(notices, log).Register(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(request.ContentTypeJSON)
			licenseHandler.New(manager, log).Register(r)
			admin.New(admin.NewService(bus, reader, notices, cfg.License.StatusOption), log).Register(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireVendor(sessions, log))
		vendorHandler.New(endpoints, renderer, translator, log).Register(r)
	})

	a.router = r
	return a, nil
}
