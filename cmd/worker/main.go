package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/scovillecup/backend-scoville/internal/common"
	"github.com/scovillecup/backend-scoville/internal/config"
	"github.com/scovillecup/backend-scoville/internal/notify"
	"github.com/scovillecup/backend-scoville/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "scoville")
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}

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

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues: map[string]int{
			cfg.CampaignQueue: 5,
			"default":         1,
		},
		Logger: asynqLogger{logger: logger},
	})

	worker := notify.CampaignWorker{Mail: mailer, Log: logger}

	logger.Info().Str("queue", cfg.CampaignQueue).Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(worker.Mux()); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped with error")
	}
	logger.Info().Msg("worker shutdown complete")
}

// asynqLogger adapts zerolog to asynq's logging interface.
type asynqLogger struct {
	logger zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
