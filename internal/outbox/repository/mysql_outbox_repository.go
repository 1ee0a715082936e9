// Package repository provides data persistence implementations for outbox entries.
package repository

import (
	"context"
	"database/sql"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
)

// MySQLOutboxRepository handles outbox entry persistence for MySQL
type MySQLOutboxRepository struct {
	db *sql.DB
}

// NewMySQLOutboxRepository creates a new MySQLOutboxRepository
func NewMySQLOutboxRepository(db *sql.DB) *MySQLOutboxRepository {
	return &MySQLOutboxRepository{
		db: db,
	}
}

// Create inserts a new outbox entry
func (r *MySQLOutboxRepository) Create(ctx context.Context, entry *domain.OutboxEntry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_entries
			  (id, aggregate_type, aggregate_id, event_type, payload, status, retries, last_error, published_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, entry.ID.String(), entry.AggregateType, entry.AggregateID,
		entry.EventType, entry.Payload, entry.Status, entry.Retries, entry.LastError, entry.PublishedAt)

	return err
}

// GetPendingEntries retrieves pending entries oldest first with row locks so
// concurrent publisher instances never drain the same entry.
func (r *MySQLOutboxRepository) GetPendingEntries(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, aggregate_type, aggregate_id, event_type, payload, status, retries, last_error, published_at, created_at, updated_at
			  FROM outbox_entries
			  WHERE status = ?
			  ORDER BY created_at ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.OutboxEntryStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanMySQLEntries(rows)
}

// ListByStatus retrieves entries in a given status for operational inspection,
// newest first.
func (r *MySQLOutboxRepository) ListByStatus(
	ctx context.Context,
	status domain.OutboxEntryStatus,
	offset, limit int,
) ([]*domain.OutboxEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, aggregate_type, aggregate_id, event_type, payload, status, retries, last_error, published_at, created_at, updated_at
			  FROM outbox_entries
			  WHERE status = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return scanMySQLEntries(rows)
}

// Update updates an outbox entry
func (r *MySQLOutboxRepository) Update(ctx context.Context, entry *domain.OutboxEntry) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_entries
			  SET status = ?, retries = ?, last_error = ?, published_at = ?, updated_at = NOW()
			  WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, entry.Status, entry.Retries,
		entry.LastError, entry.PublishedAt, entry.ID.String())

	return err
}

// RequeueFailed moves all failed entries back to pending and returns how many
// were requeued.
func (r *MySQLOutboxRepository) RequeueFailed(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_entries
			  SET status = ?, retries = 0, last_error = NULL, updated_at = NOW()
			  WHERE status = ?`

	result, err := querier.ExecContext(ctx, query,
		domain.OutboxEntryStatusPending, domain.OutboxEntryStatusFailed)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// scanMySQLEntries maps rows into outbox entries, converting the textual id.
func scanMySQLEntries(rows *sql.Rows) ([]*domain.OutboxEntry, error) {
	var entries []*domain.OutboxEntry
	for rows.Next() {
		var entry domain.OutboxEntry
		var id string

		err := rows.Scan(&id, &entry.AggregateType, &entry.AggregateID, &entry.EventType,
			&entry.Payload, &entry.Status, &entry.Retries, &entry.LastError, &entry.PublishedAt,
			&entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, err
		}

		parsed, err := parseEntryID(id)
		if err != nil {
			return nil, err
		}
		entry.ID = parsed

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
