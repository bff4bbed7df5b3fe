package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps the audit trail in Postgres.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres opens the database and ensures the schema exists.
func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// In production, schema changes belong in a dedicated migration
	// step; this keeps single-instance deployments self-contained.
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS request_history (
		id UUID PRIMARY KEY,
		request_id TEXT,
		query TEXT,
		answer INT,
		multiple_choice BOOLEAN,
		source_count INT,
		latency_ms BIGINT,
		created_at TIMESTAMPTZ DEFAULT now()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create request_history table: %w", err)
	}
	return nil
}

// Save inserts one record. A nil Answer is stored as NULL.
func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	var answer sql.NullInt64
	if rec.Answer != nil {
		answer = sql.NullInt64{Int64: int64(*rec.Answer), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO request_history (id, request_id, query, answer, multiple_choice, source_count, latency_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.RequestID, rec.Query, answer, rec.MultipleChoice, rec.SourceCount, rec.Latency.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	_ = s.db.Close()
}
