package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/scovillecup/backend-scoville/internal/admin"
	"github.com/scovillecup/backend-scoville/internal/auth"
	"github.com/scovillecup/backend-scoville/internal/boxing"
	"github.com/scovillecup/backend-scoville/internal/common"
	"github.com/scovillecup/backend-scoville/internal/config"
	dbgen "github.com/scovillecup/backend-scoville/internal/db/gen"
	"github.com/scovillecup/backend-scoville/internal/events"
	"github.com/scovillecup/backend-scoville/internal/health"
	"github.com/scovillecup/backend-scoville/internal/intake"
	"github.com/scovillecup/backend-scoville/internal/labels"
	"github.com/scovillecup/backend-scoville/internal/lock"
	"github.com/scovillecup/backend-scoville/internal/notify"
	"github.com/scovillecup/backend-scoville/internal/obs"
	"github.com/scovillecup/backend-scoville/internal/payment"
	"github.com/scovillecup/backend-scoville/internal/qr"
	"github.com/scovillecup/backend-scoville/internal/rules"
	"github.com/scovillecup/backend-scoville/internal/scoring"
	"github.com/scovillecup/backend-scoville/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "scoville")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "scoville-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if cfg.RunMigrations {
		m, err := migrate.New(cfg.MigrationsLocation, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("open migrations")
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("run migrations")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "scoville-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	queries := dbgen.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	yearRules := rules.Default(cfg.CompetitionYear)
	validate := validator.New()

	var mailer common.EmailSender = common.NopEmailSender{}
	if cfg.SMTPAddr != "" {
		mailer = common.SMTPSender{
			Addr:     cfg.SMTPAddr,
			From:     cfg.EmailFrom,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Host:     cfg.SMTPHost,
		}
	}

	emailTopics := make(map[string]bool, len(events.DefaultTopics()))
	for _, topic := range events.DefaultTopics() {
		emailTopics[topic] = true
	}
	bus := &events.Bus{
		Store: queries,
		Notifiers: []events.Notifier{notify.EmailNotifier{
			Mail:         mailer,
			Enabled:      cfg.EmailEnabled,
			From:         cfg.EmailFrom,
			TopicToggles: emailTopics,
		}},
	}

	authService, err := auth.NewService(auth.Config{
		Queries:        queries,
		Secret:         cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}
	authHandlers := auth.Handlers{Service: authService, Validate: validate}
	authMiddleware := auth.Middleware{Service: authService}

	intakeService := &intake.Service{
		DB:       intake.NewDB(pool, queries),
		Q:        queries,
		Accounts: authService,
		Rules:    yearRules,
		QR: qr.Builder{
			RenderBaseURL: cfg.QRRenderBaseURL,
			PublicBaseURL: cfg.PublicBaseURL,
		},
		Images: &storage.Client{
			BaseURL:    cfg.StorageBaseURL,
			Bucket:     cfg.StorageBucket,
			ServiceKey: cfg.StorageServiceKey,
		},
		Events:   bus,
		Log:      logger,
		Validate: validate,
	}
	intakeHandlers := &intake.Handlers{Service: intakeService}

	boxingService := &boxing.Service{
		Q:      queries,
		Locks:  lock.Locker{R: redisClient, Prefix: "scoville"},
		Rules:  yearRules,
		Events: bus,
		Log:    logger,
	}
	boxingHandlers := &boxing.Handlers{Service: boxingService}

	scoringService := &scoring.Service{Q: queries, Rules: yearRules}
	scoringHandlers := &scoring.Handlers{Service: scoringService}

	labelHandlers := labels.Handlers{
		Q: queries,
		Gen: &labels.Generator{
			QR:  &intakeService.QR,
			Log: logger,
		},
	}

	providers := map[string]payment.Provider{
		"hotpay": payment.Hotpay{
			SecretKey:       cfg.HotPaySecretKey,
			BaseURL:         cfg.HotPayBaseURL,
			CallbackBaseURL: cfg.PaymentCallbackBaseURL,
			Sandbox:         cfg.AppEnv != "production",
		},
	}
	activeProvider := providers[cfg.PaymentProvider]
	if activeProvider == nil {
		activeProvider = providers["hotpay"]
	}
	paymentHandlers := payment.Handlers{Svc: &payment.Service{
		Q:        queries,
		Provider: activeProvider,
		Rules:    yearRules,
	}}
	paymentWebhook := payment.Webhook{
		Q:         queries,
		Pool:      pool,
		Providers: providers,
		Replay:    redisClient,
		ReplayTTL: cfg.WebhookReplayTTL,
		Events:    bus,
	}

	taskOpts, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url for task queue")
	}
	taskClient := asynq.NewClient(taskOpts)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()
	campaignHandlers := notify.Handlers{
		Campaigns: &notify.Campaigner{
			Q:     queries,
			Tasks: taskClient,
			Queue: cfg.CampaignQueue,
			Log:   logger,
		},
		Validate: validate,
	}

	adminHandlers := admin.Handlers{Q: queries}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	intakeLimiter, err := newIntakeLimiter(redisClient, cfg.IntakeRateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise intake rate limiter")
	}
	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if envBool("OBS_ENABLE_PPROF", true) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/intake", func(in chi.Router) {
			in.Use(intakeLimiter.Handler)
			in.Use(idem.Middleware)
			in.Post("/entries", intakeHandlers.SubmitEntries)
			in.Post("/judges", intakeHandlers.ApplyJudge)
		})

		v.Route("/checkout", func(c chi.Router) {
			c.Use(idem.Middleware)
			c.Post("/suppliers", paymentHandlers.CreateSupplierCheckout)
			c.Post("/judges", paymentHandlers.CreateJudgeCheckout)
		})

		v.Post("/webhooks/payment/{provider}", paymentWebhook.Handle)

		v.Route("/auth", func(a chi.Router) {
			a.Post("/login", authHandlers.Login)
			a.With(authMiddleware.RequireAuth).Get("/me", authHandlers.Me)
		})

		v.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)
			protected.Delete("/sauces/{id}", intakeHandlers.DeleteSauce)
			protected.Post("/scores", scoringHandlers.SubmitScore)
		})

		v.Route("/admin", func(ad chi.Router) {
			ad.Use(authMiddleware.RequireAuth)
			ad.Use(auth.RequireAdmin(queries))
			ad.Get("/sauces", boxingHandlers.ListSauces)
			ad.Patch("/sauces/{id}/status", boxingHandlers.UpdateStatus)
			ad.Post("/sauces/{id}/scans", boxingHandlers.ScanBottle)
			ad.Post("/box-assignments", boxingHandlers.AssignBox)
			ad.Get("/box-assignments", boxingHandlers.ListAssignments)
			ad.Get("/scores/export.csv", scoringHandlers.ExportCSV)
			ad.Get("/labels", labelHandlers.Sheet)
			ad.Post("/campaigns", campaignHandlers.TriggerCampaign)
			ad.Get("/judges", adminHandlers.ListJudges)
			ad.Post("/judges/{judgeId}/type", adminHandlers.PromoteJudge)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Int("year", yearRules.Year).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	health.SetReady(false)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func newIntakeLimiter(rdb *redis.Client, formatted string) (*limitermw.Middleware, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	store, err := limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "rl:intake"})
	if err != nil {
		return nil, err
	}
	return limitermw.NewMiddleware(limiter.New(store, rate)), nil
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/block", pprof.Handler("block"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	mux.Handle("/threadcreate", pprof.Handler("threadcreate"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
