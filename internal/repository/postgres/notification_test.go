package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminePrince/bmsbackend/internal/domain"
)

func TestNotificationRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &notificationRepository{db: db}

	note := &domain.Notification{
		UserID:    1,
		Title:     "Échéance Traite",
		Message:   "La traite de 2500 DH (Wafasalaf) arrive à échéance le 15/06/2024.",
		Category:  domain.NotificationCategoryPayment,
		CreatedAt: time.Date(2024, time.June, 10, 7, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notifications`)).
		WithArgs(note.UserID, note.Title, note.Message, note.Category, note.IsRead, note.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	require.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, int32(5), note.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &notificationRepository{db: db}

	created := time.Date(2024, time.June, 10, 7, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "message", "category", "is_read", "created_at"}).
		AddRow(2, 1, "Échéance Charge", "msg", "payment", false, created).
		AddRow(1, 1, "Maintenance Prévue", "msg", "maintenance", true, created.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, message, category, is_read, created_at`)).
		WithArgs(int32(1), int32(20), int32(0)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM notifications WHERE user_id = $1`)).
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	notes, total, err := repo.List(context.Background(), 1, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, int32(2), total)
	require.Len(t, notes, 2)
	assert.Equal(t, "Échéance Charge", notes[0].Title)
	assert.False(t, notes[0].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryMarkAsRead(t *testing.T) {
	t.Run("Flips the read flag for the owner", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := &notificationRepository{db: db}

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`)).
			WithArgs(int32(5), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkAsRead(context.Background(), 5, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Another user's notification is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := &notificationRepository{db: db}

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET is_read = TRUE`)).
			WithArgs(int32(5), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.MarkAsRead(context.Background(), 5, 2)
		assert.True(t, domain.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
