package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/testutil"
)

func newPendingEntry(t *testing.T, aggregateID, eventType string) *domain.OutboxEntry {
	t.Helper()

	envelope, err := eventDomain.NewEnvelope(eventType, map[string]string{"id": aggregateID})
	require.NoError(t, err)
	envelope.Enrich()

	entry, err := domain.NewEntry("song", aggregateID, envelope)
	require.NoError(t, err)
	return entry
}

func TestNewPostgreSQLOutboxRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLOutboxRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	ctx := context.Background()

	entry := newPendingEntry(t, "song:42", "lyrics.created")

	err := repo.Create(ctx, entry)
	assert.NoError(t, err)

	// Verify the entry was created
	entries, err := repo.GetPendingEntries(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "song", entries[0].AggregateType)
	assert.Equal(t, "song:42", entries[0].AggregateID)
	assert.Equal(t, "lyrics.created", entries[0].EventType)
}

func TestPostgreSQLOutboxRepository_GetPendingEntries_OldestFirst(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	ctx := context.Background()

	first := newPendingEntry(t, "song:42", "lyrics.created")
	second := newPendingEntry(t, "song:42", "lyrics.verified")

	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(10 * time.Millisecond) // distinct created_at
	require.NoError(t, repo.Create(ctx, second))

	entries, err := repo.GetPendingEntries(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
}

func TestPostgreSQLOutboxRepository_GetPendingEntries_Empty(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)

	entries, err := repo.GetPendingEntries(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 0)
}

func TestPostgreSQLOutboxRepository_GetPendingEntries_ExcludesNonPending(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	ctx := context.Background()

	published := newPendingEntry(t, "song:1", "lyrics.created")
	pending := newPendingEntry(t, "song:2", "lyrics.created")
	require.NoError(t, repo.Create(ctx, published))
	require.NoError(t, repo.Create(ctx, pending))

	published.MarkPublished(time.Now().UTC())
	require.NoError(t, repo.Update(ctx, published))

	entries, err := repo.GetPendingEntries(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, pending.ID, entries[0].ID)
}

func TestPostgreSQLOutboxRepository_Update(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	ctx := context.Background()

	entry := newPendingEntry(t, "song:42", "lyrics.created")
	require.NoError(t, repo.Create(ctx, entry))

	entry.RecordFailure(assert.AnError, 5)
	require.NoError(t, repo.Update(ctx, entry))

	entries, err := repo.GetPendingEntries(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Retries)
	require.NotNil(t, entries[0].LastError)
}

func TestPostgreSQLOutboxRepository_ListByStatus(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	ctx := context.Background()

	entry := newPendingEntry(t, "song:42", "lyrics.created")
	require.NoError(t, repo.Create(ctx, entry))

	entry.RecordFailure(assert.AnError, 1) // bound of one: straight to failed
	require.NoError(t, repo.Update(ctx, entry))

	failed, err := repo.ListByStatus(ctx, domain.OutboxEntryStatusFailed, 0, 10)
	assert.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, entry.ID, failed[0].ID)

	pending, err := repo.ListByStatus(ctx, domain.OutboxEntryStatusPending, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 0)
}

func TestPostgreSQLOutboxRepository_RequeueFailed(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxRepository(db)
	ctx := context.Background()

	entry := newPendingEntry(t, "song:42", "lyrics.created")
	require.NoError(t, repo.Create(ctx, entry))
	entry.RecordFailure(assert.AnError, 1)
	require.NoError(t, repo.Update(ctx, entry))

	count, err := repo.RequeueFailed(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	entries, err := repo.GetPendingEntries(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Retries)
	assert.Nil(t, entries[0].LastError)
}
