package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NewsTriage/internal/domain"
	"NewsTriage/internal/ports"
)

const triagedTable = "triaged_articles"

const triagedSchema = `
CREATE TABLE IF NOT EXISTS triaged_articles (
	run_id          TEXT NOT NULL,
	identity_key    TEXT NOT NULL,
	bucket          TEXT NOT NULL,
	title           TEXT NOT NULL,
	article_url     TEXT NOT NULL,
	source_name     TEXT NOT NULL,
	sentiment       TEXT NOT NULL,
	star_rating     SMALLINT NOT NULL,
	veracity        TEXT NOT NULL,
	category        TEXT NOT NULL,
	topic           TEXT NOT NULL,
	emotion         TEXT NOT NULL,
	emotion_details JSONB NOT NULL DEFAULT '[]',
	summary         TEXT NOT NULL,
	low_confidence  BOOLEAN NOT NULL DEFAULT FALSE,
	archived_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (run_id, identity_key, bucket)
);
CREATE INDEX IF NOT EXISTS idx_triaged_articles_identity_key ON triaged_articles(identity_key);
`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository archives triaged articles into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleArchive = (*PostgresRepository)(nil)

// OpenPostgres connects with the lib/pq driver and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the archive table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, triagedSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Seen returns the identity keys that an earlier run already archived.
func (r *PostgresRepository) Seen(ctx context.Context, runID string, keys []string) (map[string]bool, error) {
	if r.db == nil || len(keys) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := seenQuery(runID, keys).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build seen query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query seen: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		result[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return result, nil
}

// SaveTriaged upserts one routed article for the given run.
func (r *PostgresRepository) SaveTriaged(ctx context.Context, runID string, bucket domain.Bucket, article domain.AnalyzedArticle) error {
	if r.db == nil {
		return nil
	}

	insert, err := upsertTriaged(runID, bucket, article)
	if err != nil {
		return err
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert triaged %s: %w", article.IdentityKey(), err)
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func seenQuery(runID string, keys []string) sq.SelectBuilder {
	return psql.Select("DISTINCT identity_key").
		From(triagedTable).
		Where("identity_key = ANY(?)", pq.StringArray(keys)).
		Where(sq.NotEq{"run_id": runID})
}

func upsertTriaged(runID string, bucket domain.Bucket, a domain.AnalyzedArticle) (sq.InsertBuilder, error) {
	details := a.EmotionDetails
	if details == nil {
		details = []domain.LabelScore{}
	}
	rawDetails, err := json.Marshal(details)
	if err != nil {
		return sq.InsertBuilder{}, fmt.Errorf("marshal emotion details: %w", err)
	}

	return psql.Insert(triagedTable).
		Columns(
			"run_id", "identity_key", "bucket", "title", "article_url", "source_name",
			"sentiment", "star_rating", "veracity", "category", "topic", "emotion",
			"emotion_details", "summary", "low_confidence",
		).
		Values(
			runID, a.IdentityKey(), string(bucket), a.Title, a.URL, a.SourceName,
			a.Sentiment, a.StarRating, string(a.Veracity), string(a.Category), a.Topic, a.Emotion,
			string(rawDetails), a.Summary, a.LowConfidence,
		).
		Suffix(`ON CONFLICT (run_id, identity_key, bucket) DO UPDATE
			SET title = EXCLUDED.title,
			    category = EXCLUDED.category,
			    emotion_details = EXCLUDED.emotion_details,
			    summary = EXCLUDED.summary,
			    archived_at = NOW()`), nil
}
