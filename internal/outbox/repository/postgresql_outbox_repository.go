// Package repository provides data persistence implementations for outbox entries.
package repository

import (
	"context"
	"database/sql"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
)

// PostgreSQLOutboxRepository handles outbox entry persistence for PostgreSQL
type PostgreSQLOutboxRepository struct {
	db *sql.DB
}

// NewPostgreSQLOutboxRepository creates a new PostgreSQLOutboxRepository
func NewPostgreSQLOutboxRepository(db *sql.DB) *PostgreSQLOutboxRepository {
	return &PostgreSQLOutboxRepository{
		db: db,
	}
}

// Create inserts a new outbox entry
func (r *PostgreSQLOutboxRepository) Create(ctx context.Context, entry *domain.OutboxEntry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_entries
			  (id, aggregate_type, aggregate_id, event_type, payload, status, retries, last_error, published_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, entry.ID, entry.AggregateType, entry.AggregateID,
		entry.EventType, entry.Payload, entry.Status, entry.Retries, entry.LastError, entry.PublishedAt)

	return err
}

// GetPendingEntries retrieves pending entries oldest first, locking the
// selected rows so concurrent publisher instances never drain the same entry.
func (r *PostgreSQLOutboxRepository) GetPendingEntries(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, aggregate_type, aggregate_id, event_type, payload, status, retries, last_error, published_at, created_at, updated_at
			  FROM outbox_entries
			  WHERE status = $1
			  ORDER BY created_at ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.OutboxEntryStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanEntries(rows)
}

// ListByStatus retrieves entries in a given status for operational inspection,
// newest first.
func (r *PostgreSQLOutboxRepository) ListByStatus(
	ctx context.Context,
	status domain.OutboxEntryStatus,
	offset, limit int,
) ([]*domain.OutboxEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, aggregate_type, aggregate_id, event_type, payload, status, retries, last_error, published_at, created_at, updated_at
			  FROM outbox_entries
			  WHERE status = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, status, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanEntries(rows)
}

// Update updates an outbox entry
func (r *PostgreSQLOutboxRepository) Update(ctx context.Context, entry *domain.OutboxEntry) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_entries
			  SET status = $1, retries = $2, last_error = $3, published_at = $4, updated_at = NOW()
			  WHERE id = $5`

	_, err := querier.ExecContext(ctx, query, entry.Status, entry.Retries,
		entry.LastError, entry.PublishedAt, entry.ID)

	return err
}

// RequeueFailed moves all failed entries back to pending and returns how many
// were requeued.
func (r *PostgreSQLOutboxRepository) RequeueFailed(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_entries
			  SET status = $1, retries = 0, last_error = NULL, updated_at = NOW()
			  WHERE status = $2`

	result, err := querier.ExecContext(ctx, query,
		domain.OutboxEntryStatusPending, domain.OutboxEntryStatusFailed)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// scanEntries maps rows into outbox entries.
func scanEntries(rows *sql.Rows) ([]*domain.OutboxEntry, error) {
	var entries []*domain.OutboxEntry
	for rows.Next() {
		var entry domain.OutboxEntry

		err := rows.Scan(&entry.ID, &entry.AggregateType, &entry.AggregateID, &entry.EventType,
			&entry.Payload, &entry.Status, &entry.Retries, &entry.LastError, &entry.PublishedAt,
			&entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
