package outfit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
	"github.com/yanqian/outfit-advisor/pkg/util"
)

// Service turns weather queries into normalized day plans.
type Service interface {
	Recommend(ctx context.Context, query WeatherQuery) (Result, error)
	Stats(ctx context.Context) ([]SourceCount, error)
}

// Generator is the external text generation capability. Implementations are
// shared across requests and must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}

// OutcomeRecorder stores per request telemetry.
type OutcomeRecorder interface {
	Record(ctx context.Context, outcome Outcome) error
	Counts(ctx context.Context) ([]SourceCount, error)
}

var errGenerationTimeout = errors.New("generation timed out")

type service struct {
	cfg       Config
	generator Generator
	recorder  OutcomeRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the outfit recommendation pipeline.
func NewService(cfg Config, generator Generator, recorder OutcomeRecorder, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: generator,
		recorder:  recorder,
		logger:    logger.With("component", "outfit.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Recommend(ctx context.Context, query WeatherQuery) (Result, error) {
	start := s.now()
	s.logger.Info("outfit recommendation requested",
		"location", query.Location,
		"temp", query.Temperature,
		"description", query.Description,
		"wind", query.Wind,
	)

	gen, err := s.generate(ctx, BuildPrompt(query))
	var res Result
	switch {
	case errors.Is(err, errGenerationTimeout):
		s.logger.Warn("generation timed out, using fallback plan", "timeout", s.cfg.GenerationTimeout)
		res = Result{Plan: Normalize(FallbackPlan(query)), Source: SourceFallbackTimeout}
	case err != nil && ctx.Err() != nil:
		s.logger.Info("outfit recommendation abandoned by caller", "error", err)
		return Result{}, err
	case err != nil:
		s.record(ctx, Outcome{Source: SourceUpstreamError, Latency: s.now().Sub(start)})
		return Result{}, apperrors.Wrap("llm_error", "generation request failed", err)
	default:
		s.logger.Info("generation response received", "model", gen.Model, "preview", preview(gen.Text, 200))
		res = Result{Source: SourceModel, Model: gen.Model, Usage: gen.Usage}
		plan, err := ExtractPlan(gen.Text)
		if err != nil {
			s.logger.Warn("generation response unusable, using fallback plan", "error", err)
			plan = FallbackPlan(query)
			res.Source = SourceFallbackExtraction
		}
		res.Plan = Normalize(plan)
	}

	latency := s.now().Sub(start)
	s.record(ctx, Outcome{Source: res.Source, Model: res.Model, Latency: latency, Usage: res.Usage})
	attrs := []any{"source", res.Source, "fallback", res.Source.IsFallback(), "latency_ms", latency.Milliseconds()}
	if !res.Usage.IsZero() {
		attrs = append(attrs, "total_tokens", res.Usage.TotalTokens)
	}
	s.logger.Info("outfit recommendation ready", attrs...)
	return res, nil
}

func (s *service) Stats(ctx context.Context) ([]SourceCount, error) {
	if s.recorder == nil {
		return nil, nil
	}
	counts, err := s.recorder.Counts(ctx)
	if err != nil {
		return nil, apperrors.Wrap("stats_error", "failed to load outcome counts", err)
	}
	return counts, nil
}

// generate runs the generator under the configured timeout. A timeout is
// reported as errGenerationTimeout; cancellation of ctx itself is returned as is.
func (s *service) generate(ctx context.Context, prompt string) (Generation, error) {
	if s.cfg.GenerationTimeout <= 0 {
		return s.generator.Generate(ctx, prompt)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	type reply struct {
		gen Generation
		err error
	}
	done := make(chan reply, 1)
	go func() {
		gen, err := s.generator.Generate(genCtx, prompt)
		done <- reply{gen: gen, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return Generation{}, errGenerationTimeout
		}
		return r.gen, r.err
	case <-genCtx.Done():
		if err := ctx.Err(); err != nil {
			return Generation{}, err
		}
		return Generation{}, errGenerationTimeout
	}
}

func (s *service) record(ctx context.Context, outcome Outcome) {
	if s.recorder == nil {
		return
	}
	timeout := s.cfg.RecordTimeout
	if timeout <= 0 {
		timeout = DefaultRecordTimeout
	}
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	outcome.CreatedAt = s.now()
	if err := s.recorder.Record(recordCtx, outcome); err != nil {
		s.logger.Error("failed to record outcome", "source", outcome.Source, "error", err)
	}
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
