package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	socialDomain "github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/testutil"
)

func TestPostgreSQLSocialRepository_CreateComment(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSocialRepository(db)
	ctx := context.Background()

	lyricsID := testutil.CreateTestLyrics(t, db, "postgres", "en")
	comment := socialDomain.NewComment(lyricsID, uuid.Must(uuid.NewV7()), "great song!")

	err := repo.CreateComment(ctx, comment)
	assert.NoError(t, err)
}

func TestPostgreSQLSocialRepository_CreateComment_MissingLyrics(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSocialRepository(db)

	comment := socialDomain.NewComment(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), "orphan")

	err := repo.CreateComment(context.Background(), comment)
	assert.Error(t, err, "should fail due to foreign key on lyrics_id")
}

func TestPostgreSQLSocialRepository_Follows(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSocialRepository(db)
	ctx := context.Background()

	followerID := uuid.Must(uuid.NewV7())
	followeeID := uuid.Must(uuid.NewV7())

	exists, err := repo.FollowExists(ctx, followerID, followeeID)
	require.NoError(t, err)
	assert.False(t, exists)

	follow := socialDomain.NewFollow(followerID, followeeID)
	require.NoError(t, repo.CreateFollow(ctx, follow))

	exists, err = repo.FollowExists(ctx, followerID, followeeID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Reverse direction is a distinct relationship
	exists, err = repo.FollowExists(ctx, followeeID, followerID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostgreSQLSocialRepository_CreateFollow_Duplicate(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSocialRepository(db)
	ctx := context.Background()

	followerID := uuid.Must(uuid.NewV7())
	followeeID := uuid.Must(uuid.NewV7())

	require.NoError(t, repo.CreateFollow(ctx, socialDomain.NewFollow(followerID, followeeID)))

	err := repo.CreateFollow(ctx, socialDomain.NewFollow(followerID, followeeID))
	assert.Error(t, err, "should fail due to unique constraint on (follower_id, followee_id)")
}

func TestPostgreSQLSocialRepository_GetLyricsOwner(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSocialRepository(db)
	ctx := context.Background()

	// Fixture lyrics have no submitter
	lyricsID := testutil.CreateTestLyrics(t, db, "postgres", "en")

	owner, err := repo.GetLyricsOwner(ctx, lyricsID)
	require.NoError(t, err)
	assert.Nil(t, owner)

	_, err = repo.GetLyricsOwner(ctx, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
