package outcomes

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

const schema = `
	CREATE TABLE IF NOT EXISTS generation_outcomes (
		id                BIGSERIAL PRIMARY KEY,
		source            TEXT        NOT NULL,
		model             TEXT        NOT NULL DEFAULT '',
		latency_ms        BIGINT      NOT NULL,
		prompt_tokens     INTEGER     NOT NULL DEFAULT 0,
		completion_tokens INTEGER     NOT NULL DEFAULT 0,
		total_tokens      INTEGER     NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresRecorder implements outfit.OutcomeRecorder using pgx.
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder constructs the recorder.
func NewPostgresRecorder(pool *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{pool: pool}
}

// EnsureSchema creates the outcomes table when it does not exist yet.
func (r *PostgresRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create generation_outcomes: %w", err)
	}
	return nil
}

// Record inserts one outcome row.
func (r *PostgresRecorder) Record(ctx context.Context, outcome outfit.Outcome) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO generation_outcomes (source, model, latency_ms, prompt_tokens, completion_tokens, total_tokens, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		string(outcome.Source),
		outcome.Model,
		outcome.Latency.Milliseconds(),
		outcome.Usage.PromptTokens,
		outcome.Usage.CompletionTokens,
		outcome.Usage.TotalTokens,
		outcome.CreatedAt,
	)
	return err
}

// Counts aggregates outcomes per source.
func (r *PostgresRecorder) Counts(ctx context.Context) ([]outfit.SourceCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT source, COUNT(*)
		FROM generation_outcomes
		GROUP BY source
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []outfit.SourceCount
	for rows.Next() {
		var (
			source string
			count  int64
		)
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		items = append(items, outfit.SourceCount{Source: outfit.Source(source), Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortCounts(items)
	return items, nil
}

var _ outfit.OutcomeRecorder = (*PostgresRecorder)(nil)
