package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/common"
	"github.com/noah-isme/toko-sim/internal/config"
	"github.com/noah-isme/toko-sim/internal/events"
	"github.com/noah-isme/toko-sim/internal/health"
	"github.com/noah-isme/toko-sim/internal/obs"
	"github.com/noah-isme/toko-sim/internal/ratelimit"
	"github.com/noah-isme/toko-sim/internal/security"
	"github.com/noah-isme/toko-sim/internal/shop"
)

func main() {
	cfg := config.MustLoad()
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, obs.TracingConfig{
		Enabled:       cfg.TracingEnabled,
		ServiceName:   "toko-sim",
		Endpoint:      cfg.OTLPEndpoint,
		SamplingRatio: cfg.TracingSampling,
		Environment:   cfg.AppEnv,
	})
	if err != nil {
		logger.Error().Err(err).Msg("initialise tracing")
		shutdownTracer = func(context.Context) error { return nil }
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error().Err(err).Msg("shutdown tracer")
		}
	}()

	var (
		httpMetrics *obs.HTTPMetrics
		shopMetrics *obs.ShopMetrics
		metricsView http.Handler
	)
	if cfg.MetricsEnabled {
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, prometheus.DefaultRegisterer)
		shopMetrics = obs.NewShopMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
		metricsView = promhttp.Handler()
	}

	redisClient := connectRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
	}

	eventStore := events.NewMemoryStore(cfg.EventCapacity)
	bus := &events.Bus{
		Store:     eventStore,
		Notifiers: []events.Notifier{events.LogNotifier{Logger: logger}},
	}

	inventory := catalog.New()
	if cfg.SeedCatalog {
		inventory = catalog.Seed()
	}
	svc := shop.NewService(inventory, shop.Options{
		Logger:         logger,
		Metrics:        shopMetrics,
		Events:         bus,
		CurrencySuffix: cfg.CurrencySuffix,
	})
	shopHandler := shop.NewHandler(shop.HandlerConfig{
		Service:  svc,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
		Events:   eventStore,
	})

	var write []func(http.Handler) http.Handler
	if redisClient != nil {
		limiter := ratelimit.Handler{
			Limiter: ratelimit.RedisLimiter{Client: redisClient, Prefix: "ratelimit:"},
			Config: ratelimit.Config{
				Key:    ratelimit.ByClientIP("shop-write"),
				Window: cfg.RateLimitWindow,
				Max:    cfg.RateLimitMax,
			},
			OnError: func(err error) { logger.Warn().Err(err).Msg("rate limiter unavailable") },
		}
		idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
		write = append(write, limiter.Middleware, idem.Middleware)
	}

	healthHandler := &health.Handler{
		Probes: map[string]health.Probe{"redis": health.RedisProbe(redisClient)},
	}

	router := newRouter(routerDeps{
		Logger:      logger,
		HTTPMetrics: httpMetrics,
		Metrics:     metricsView,
		Origins:     cfg.CORSAllowedOrigins,
		Health:      healthHandler,
		Shop:        shopHandler,
		Write:       write,
		Security:    security.Headers{HSTSMaxAge: cfg.HSTSMaxAge, HSTSIncludeSubdomains: true},
		MaxBody:     cfg.MaxBodyBytes,
		TrustProxy:  cfg.TrustProxyHeaders,
	})

	var handler http.Handler = router
	if cfg.TracingEnabled {
		handler = otelhttp.NewHandler(router, "toko-sim")
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		healthHandler.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown http server")
		}
	}()

	logger.Info().
		Str("addr", srv.Addr).
		Bool("seeded", cfg.SeedCatalog).
		Bool("development", cfg.IsDevelopment()).
		Bool("redis", redisClient != nil).
		Msg("starting toko-sim api")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("http server error")
	}
	logger.Info().Msg("server stopped")
}

// connectRedis returns nil when REDIS_URL is unset; idempotency keys and rate
// limiting are then disabled.
func connectRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		logger.Info().Msg("redis not configured, idempotency and rate limiting disabled")
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if cfg.MetricsEnabled {
		if err := redisotel.InstrumentMetrics(client); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return client
}
