package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/outfit-advisor/internal/infra/llm/gemini"
	"github.com/yanqian/outfit-advisor/internal/infra/outcomes"
	"github.com/yanqian/outfit-advisor/internal/infra/ratelimit"
	"github.com/yanqian/outfit-advisor/pkg/logger"
)

func provideOutfitConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{
		GenerationTimeout: cfg.Outfit.GenerationTimeout,
		RecordTimeout:     cfg.Outfit.RecordTimeout,
	}
}

func provideCLILogger() *slog.Logger {
	return logger.NewWithWriter(os.Stderr)
}

func provideGenerator(cfg *config.Config, logger *slog.Logger) (outfit.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("openai compatible generator enabled", "model", cfg.LLM.Model)
		return chatgpt.NewGenerator(client, cfg.LLM.Model, cfg.LLM.Temperature), nil
	case config.ProviderGemini:
		client, err := gemini.NewClient(context.Background(), gemini.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("gemini generator enabled", "model", client.Model())
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}
}

func provideOutcomeRecorder(cfg *config.Config, logger *slog.Logger) (outfit.OutcomeRecorder, func()) {
	fallback := outcomes.NewMemoryRecorder()
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Outcomes.Postgres.DSN)
	if dsn == "" {
		logger.Info("outcomes postgres dsn not set, using memory recorder")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory recorder", "error", err)
		return fallback, noop
	}
	if cfg.Outcomes.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Outcomes.Postgres.MaxConns
	}
	if cfg.Outcomes.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Outcomes.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory recorder", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory recorder", "error", err)
		pool.Close()
		return fallback, noop
	}
	recorder := outcomes.NewPostgresRecorder(pool)
	if err := recorder.EnsureSchema(ctx); err != nil {
		logger.Error("outcomes schema setup failed, using memory recorder", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("outcomes postgres recorder enabled")
	return recorder, pool.Close
}

func provideRateLimiter(cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, func()) {
	rl := cfg.HTTP.RateLimit
	noop := func() {}
	if !rl.Enabled {
		return nil, noop
	}
	memory := ratelimit.NewMemoryLimiter(rl.RequestsPerMinute, rl.Burst)
	if rl.Store != config.RateLimitStoreValkey {
		return memory, noop
	}

	opt, err := buildValkeyOptions(rl.ValkeyAddr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory limiter", "error", err)
		return memory, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory limiter", "error", err)
		return memory, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory limiter", "error", err)
		client.Close()
		return memory, noop
	}
	logger.Info("valkey rate limiter enabled", "addr", rl.ValkeyAddr)
	return ratelimit.NewValkeyLimiter(client, "outfit:ratelimit", rl.RequestsPerMinute), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
