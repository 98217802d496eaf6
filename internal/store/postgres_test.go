// internal/store/postgres_test.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-notifier/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestPostgresStore_ListProfiles(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "blocked_users"}).
		AddRow("user-1", "one@padel.app", "{user-9}").
		AddRow("user-2", nil, "{}")
	mock.ExpectQuery("SELECT id, email, blocked_users FROM profiles").WillReturnRows(rows)

	s := NewPostgresStore(db)
	profiles, err := s.ListProfiles(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "user-1", profiles[0].ID)
	assert.Equal(t, "one@padel.app", profiles[0].Email)
	assert.Equal(t, []string{"user-9"}, profiles[0].BlockedUsers)
	assert.Empty(t, profiles[1].Email)
	assert.Empty(t, profiles[1].BlockedUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetProfile_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email, blocked_users FROM profiles WHERE").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	s := NewPostgresStore(db)
	profile, err := s.GetProfile(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestPostgresStore_ListFilters_NullableColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"user_id", "location_latitude", "location_longitude", "location_radius_km", "group_ids",
	}).
		AddRow("user-1", 50.85, 4.35, 10.0, "{group-a}").
		AddRow("user-2", nil, nil, nil, "{}")
	mock.ExpectQuery("FROM notification_filters").WillReturnRows(rows)

	s := NewPostgresStore(db)
	filters, err := s.ListFilters(context.Background())

	require.NoError(t, err)
	require.Len(t, filters, 2)

	assert.True(t, filters[0].HasLocation())
	require.NotNil(t, filters[0].LocationRadiusKm)
	assert.Equal(t, 10.0, *filters[0].LocationRadiusKm)
	assert.Equal(t, []string{"group-a"}, filters[0].GroupIDs)

	assert.False(t, filters[1].HasLocation())
	assert.Nil(t, filters[1].LocationRadiusKm)
	assert.Empty(t, filters[1].GroupIDs)
}

func TestPostgresStore_ListParticipants(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"profile_id"}).
		AddRow("user-1").
		AddRow("user-2")
	mock.ExpectQuery("SELECT profile_id FROM match_participants").
		WithArgs("match-1").
		WillReturnRows(rows)

	s := NewPostgresStore(db)
	ids, err := s.ListParticipants(context.Background(), "match-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"user-1", "user-2"}, ids)
}

func TestPostgresStore_ListThoughtAuthors_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT author_id FROM match_thoughts").
		WithArgs("match-1").
		WillReturnError(errors.New("connection refused"))

	s := NewPostgresStore(db)
	ids, err := s.ListThoughtAuthors(context.Background(), "match-1")

	assert.Error(t, err)
	assert.Nil(t, ids)
}

func TestPostgresStore_InsertNotifications(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	now := time.Now().UTC()
	batch := []models.Notification{
		{
			ID: "n-1", UserID: "user-1", Kind: models.TriggerNewMatch,
			Title: "New padel match", Message: "m", Link: "/matches/match-1",
			MatchID: "match-1", Read: false, CreatedAt: now,
		},
		{
			ID: "n-2", UserID: "user-2", Kind: models.TriggerNewMatch,
			Title: "New padel match", Message: "m", Link: "/matches/match-1",
			MatchID: "match-1", Read: false, CreatedAt: now,
		},
	}

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(
			"n-1", "user-1", "new_match", "New padel match", "m", "/matches/match-1", "match-1", false, now,
			"n-2", "user-2", "new_match", "New padel match", "m", "/matches/match-1", "match-1", false, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	s := NewPostgresStore(db)
	err := s.InsertNotifications(context.Background(), batch)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_InsertNotifications_EmptyBatchIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	s := NewPostgresStore(db)
	err := s.InsertNotifications(context.Background(), nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
