package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
)

// Store persists activity records in PostgreSQL. Records are append-only;
// there is no update path by design.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL-backed activity store. The db handle is expected
// to use the pgx stdlib driver.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the activity_records table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS activity_records (
			id            UUID PRIMARY KEY,
			actor_id      BIGINT NOT NULL,
			activity_type TEXT NOT NULL,
			description   TEXT NOT NULL,
			subject_type  TEXT,
			subject_id    BIGINT,
			properties    JSONB,
			ip_address    TEXT NOT NULL DEFAULT '',
			user_agent    TEXT NOT NULL DEFAULT '',
			method        TEXT NOT NULL DEFAULT '',
			url           TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS activity_records_actor_idx
			ON activity_records (actor_id, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("migrate activity_records: %w", err)
	}
	return nil
}

// Append inserts one record. Duplicate IDs are ignored so a replayed write
// stays idempotent.
func (s *Store) Append(ctx context.Context, rec activity.Record) error {
	var properties []byte
	if rec.Properties != nil {
		var err error
		properties, err = json.Marshal(rec.Properties)
		if err != nil {
			return fmt.Errorf("marshal activity properties: %w", err)
		}
	}

	query := `
		INSERT INTO activity_records (
			id, actor_id, activity_type, description,
			subject_type, subject_id, properties,
			ip_address, user_agent, method, url, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.ActorID,
		string(rec.Type),
		rec.Description,
		rec.SubjectType,
		rec.SubjectID,
		properties,
		rec.IPAddress,
		rec.UserAgent,
		rec.Method,
		rec.URL,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity record: %w", err)
	}
	return nil
}

// ListRecent returns the N most recent records.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]activity.Record, error) {
	query := selectColumns + `
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByActor returns records for a specific actor, oldest first.
func (s *Store) ListByActor(ctx context.Context, actorID int64) ([]activity.Record, error) {
	query := selectColumns + `
		WHERE actor_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("query activity records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

const selectColumns = `
	SELECT id, actor_id, activity_type, description,
		   subject_type, subject_id, properties,
		   ip_address, user_agent, method, url, created_at
	FROM activity_records
`

func scanRecords(rows *sql.Rows) ([]activity.Record, error) {
	var records []activity.Record

	for rows.Next() {
		var (
			rec         activity.Record
			id          uuid.UUID
			activityTyp string
			properties  []byte
		)

		err := rows.Scan(
			&id,
			&rec.ActorID,
			&activityTyp,
			&rec.Description,
			&rec.SubjectType,
			&rec.SubjectID,
			&properties,
			&rec.IPAddress,
			&rec.UserAgent,
			&rec.Method,
			&rec.URL,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity record: %w", err)
		}

		rec.ID = id
		rec.Type = activity.Type(activityTyp)
		if len(properties) > 0 {
			if err := json.Unmarshal(properties, &rec.Properties); err != nil {
				return nil, fmt.Errorf("unmarshal activity properties: %w", err)
			}
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity records: %w", err)
	}

	return records, nil
}
