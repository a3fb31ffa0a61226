package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/platform/postgres"
	"github.com/mindcredit/mindcredit-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window() (time.Time, time.Time) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return start, start.Add(30 * 24 * time.Hour)
}

func TestPostgresEmotionStore_FindByUserInWindow(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	emotionStore := postgres.NewPostgresEmotionStore(db, nil)

	userID := uuid.New()
	start, end := window()

	mock.ExpectQuery(regexp.QuoteMeta("created_at BETWEEN $2 AND $3")).
		WithArgs(userID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "emotion_type", "intensity", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "happy", 3, start).
			AddRow(uuid.NewString(), userID.String(), "stressed", 8, end))

	emotions, err := emotionStore.FindByUserInWindow(context.Background(), userID, start, end)
	require.NoError(t, err)
	require.Len(t, emotions, 2)
	assert.Equal(t, domain.EmotionHappy, emotions[0].EmotionType)
	assert.Equal(t, 3, emotions[0].Intensity)
	assert.Equal(t, domain.EmotionStressed, emotions[1].EmotionType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEmotionStore_FindByUserInWindow_Empty(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	emotionStore := postgres.NewPostgresEmotionStore(db, nil)

	start, end := window()
	mock.ExpectQuery("FROM emotions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "emotion_type", "intensity", "created_at"}))

	emotions, err := emotionStore.FindByUserInWindow(context.Background(), uuid.New(), start, end)
	require.NoError(t, err)
	assert.NotNil(t, emotions)
	assert.Empty(t, emotions)
}

func TestPostgresEmotionStore_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	emotionStore := postgres.NewPostgresEmotionStore(db, nil)

	emotion := &domain.Emotion{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		EmotionType: domain.EmotionAnxious,
		Intensity:   6,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO emotions").
		WithArgs(emotion.ID, emotion.UserID, "anxious", 6, emotion.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, emotionStore.Create(context.Background(), emotion))
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO emotions").WillReturnError(newPgError("23503"))
		err := emotionStore.Create(context.Background(), emotion)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("invalid intensity", func(t *testing.T) {
		bad := *emotion
		bad.Intensity = 11
		assert.ErrorIs(t, emotionStore.Create(context.Background(), &bad), domain.ErrInvalidEmotionIntensity)
	})
}

func TestPostgresThoughtStore_FindByUserInWindow(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	thoughtStore := postgres.NewPostgresThoughtStore(db, nil)

	userID := uuid.New()
	start, end := window()

	mock.ExpectQuery("FROM thoughts").
		WithArgs(userID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "sentiment", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "paid rent on time", "positive", start))

	thoughts, err := thoughtStore.FindByUserInWindow(context.Background(), userID, start, end)
	require.NoError(t, err)
	require.Len(t, thoughts, 1)
	assert.Equal(t, domain.SentimentPositive, thoughts[0].Sentiment)
	assert.Equal(t, "paid rent on time", thoughts[0].Content)
}

func TestPostgresThoughtStore_FindByUserInWindow_QueryError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	thoughtStore := postgres.NewPostgresThoughtStore(db, nil)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery("FROM thoughts").WillReturnError(dbErr)

	start, end := window()
	_, err := thoughtStore.FindByUserInWindow(context.Background(), uuid.New(), start, end)
	assert.ErrorIs(t, err, dbErr)
}

func TestPostgresTransactionStore_FindByUserInWindow(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	txStore := postgres.NewPostgresTransactionStore(db, nil)

	userID := uuid.New()
	start, end := window()

	mock.ExpectQuery("FROM transactions").
		WithArgs(userID, start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "transaction_type", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "125.50", "purchase", start))

	transactions, err := txStore.FindByUserInWindow(context.Background(), userID, start, end)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("125.50")))
	assert.Equal(t, domain.TransactionPurchase, transactions[0].TransactionType)
}

func TestPostgresTransactionStore_CreateBatch(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	txStore := postgres.NewPostgresTransactionStore(db, nil)

	userID := uuid.New()
	first, err := domain.NewTransaction(userID, decimal.NewFromInt(40), domain.TransactionBill)
	require.NoError(t, err)
	second, err := domain.NewTransaction(userID, decimal.RequireFromString("9.99"), domain.TransactionPurchase)
	require.NoError(t, err)

	prep := mock.ExpectPrepare("INSERT INTO transactions")
	prep.ExpectExec().
		WithArgs(first.ID, userID, first.Amount, "bill", first.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(second.ID, userID, second.Amount, "purchase", second.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, txStore.CreateBatch(context.Background(), []*domain.Transaction{first, second}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransactionStore_CreateBatch_Empty(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	txStore := postgres.NewPostgresTransactionStore(db, nil)

	require.NoError(t, txStore.CreateBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
