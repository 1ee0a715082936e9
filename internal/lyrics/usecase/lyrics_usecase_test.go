package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	"github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
	outboxDomain "github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
)

// MockTxManager is a mock implementation of database.TxManager.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) == nil {
		return fn(ctx)
	}
	return args.Error(0)
}

// MockLyricsRepository is a mock implementation of LyricsRepository.
type MockLyricsRepository struct {
	mock.Mock
}

func (m *MockLyricsRepository) Create(ctx context.Context, lyrics *domain.Lyrics) error {
	args := m.Called(ctx, lyrics)
	return args.Error(0)
}

func (m *MockLyricsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lyrics), args.Error(1)
}

func (m *MockLyricsRepository) MarkVerified(ctx context.Context, lyrics *domain.Lyrics) error {
	args := m.Called(ctx, lyrics)
	return args.Error(0)
}

func (m *MockLyricsRepository) CreateTranslation(ctx context.Context, translation *domain.Translation) error {
	args := m.Called(ctx, translation)
	return args.Error(0)
}

func (m *MockLyricsRepository) TranslationExists(
	ctx context.Context,
	lyricsID uuid.UUID,
	language string,
) (bool, error) {
	args := m.Called(ctx, lyricsID, language)
	return args.Bool(0), args.Error(1)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, entry *outboxDomain.OutboxEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestLyricsUseCase_SubmitLyrics(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	submittedBy := uuid.Must(uuid.NewV7())

	var capturedEntry *outboxDomain.OutboxEntry
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	lyricsRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Lyrics")).Return(nil)
	outboxRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OutboxEntry")).
		Run(func(args mock.Arguments) {
			capturedEntry = args.Get(1).(*outboxDomain.OutboxEntry)
		}).
		Return(nil)

	lyrics, err := uc.SubmitLyrics(context.Background(), SubmitLyricsInput{
		Title:       "  Test Song  ",
		Content:     "la la la",
		Language:    "en",
		SubmittedBy: &submittedBy,
	})

	require.NoError(t, err)
	assert.Equal(t, "Test Song", lyrics.Title)
	assert.False(t, lyrics.Verified)

	require.NotNil(t, capturedEntry)
	assert.Equal(t, domain.AggregateType, capturedEntry.AggregateType)
	assert.Equal(t, lyrics.ID.String(), capturedEntry.AggregateID)
	assert.Equal(t, domain.EventLyricsCreated, capturedEntry.EventType)
	assert.Equal(t, outboxDomain.OutboxEntryStatusPending, capturedEntry.Status)

	envelope, err := capturedEntry.Envelope()
	require.NoError(t, err)
	assert.Equal(t, submittedBy.String(), envelope.Metadata.UserID)

	var payload domain.LyricsCreatedPayload
	require.NoError(t, envelope.DecodePayload(&payload))
	assert.Equal(t, lyrics.ID, payload.LyricsID)

	lyricsRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestLyricsUseCase_SubmitLyrics_ValidationError(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	tests := []struct {
		name  string
		input SubmitLyricsInput
	}{
		{
			name:  "MissingTitle",
			input: SubmitLyricsInput{Content: "la la la", Language: "en"},
		},
		{
			name:  "BlankContent",
			input: SubmitLyricsInput{Title: "Test", Content: "   ", Language: "en"},
		},
		{
			name:  "InvalidLanguage",
			input: SubmitLyricsInput{Title: "Test", Content: "la la la", Language: "english"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SubmitLyrics(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}

	txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
}

func TestLyricsUseCase_SubmitLyrics_RepositoryError(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	lyricsRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := uc.SubmitLyrics(context.Background(), SubmitLyricsInput{
		Title:    "Test Song",
		Content:  "la la la",
		Language: "en",
	})

	assert.Error(t, err)
	outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLyricsUseCase_VerifyLyrics(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	lyrics := domain.NewLyrics("Test Song", "la la la", "en", nil, nil)

	var capturedEntry *outboxDomain.OutboxEntry
	lyricsRepo.On("GetByID", mock.Anything, lyrics.ID).Return(lyrics, nil)
	txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	lyricsRepo.On("MarkVerified", mock.Anything, lyrics).Return(nil)
	outboxRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OutboxEntry")).
		Run(func(args mock.Arguments) {
			capturedEntry = args.Get(1).(*outboxDomain.OutboxEntry)
		}).
		Return(nil)

	verified, err := uc.VerifyLyrics(context.Background(), lyrics.ID)

	require.NoError(t, err)
	assert.True(t, verified.Verified)

	require.NotNil(t, capturedEntry)
	assert.Equal(t, domain.EventLyricsVerified, capturedEntry.EventType)
	assert.Equal(t, lyrics.ID.String(), capturedEntry.AggregateID)

	lyricsRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestLyricsUseCase_VerifyLyrics_AlreadyVerified(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	lyrics := domain.NewLyrics("Test Song", "la la la", "en", nil, nil)
	lyrics.MarkVerified()

	lyricsRepo.On("GetByID", mock.Anything, lyrics.ID).Return(lyrics, nil)

	verified, err := uc.VerifyLyrics(context.Background(), lyrics.ID)

	require.NoError(t, err)
	assert.True(t, verified.Verified)
	txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLyricsUseCase_VerifyLyrics_NotFound(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	id := uuid.Must(uuid.NewV7())
	lyricsRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrLyricsNotFound)

	_, err := uc.VerifyLyrics(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLyricsUseCase_GetLyrics(t *testing.T) {
	txManager := new(MockTxManager)
	lyricsRepo := new(MockLyricsRepository)
	outboxRepo := new(MockOutboxRepository)
	uc := NewLyricsUseCase(txManager, lyricsRepo, outboxRepo)

	lyrics := domain.NewLyrics("Test Song", "la la la", "en", nil, nil)
	lyricsRepo.On("GetByID", mock.Anything, lyrics.ID).Return(lyrics, nil)

	got, err := uc.GetLyrics(context.Background(), lyrics.ID)

	require.NoError(t, err)
	assert.Equal(t, lyrics, got)
}
