// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"padel-notifier/internal/models"

	"github.com/lib/pq"
)

// PostgresStore implements Store on top of a standard *sql.DB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, email, blocked_users FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		var email sql.NullString
		if err := rows.Scan(&p.ID, &email, pq.Array(&p.BlockedUsers)); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p.Email = email.String
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	var email sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, blocked_users FROM profiles WHERE id = $1`, userID,
	).Scan(&p.ID, &email, pq.Array(&p.BlockedUsers))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %s: %w", userID, err)
	}
	p.Email = email.String
	return &p, nil
}

func (s *PostgresStore) ListFilters(ctx context.Context) ([]models.RecipientFilter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, location_latitude, location_longitude, location_radius_km, group_ids
		FROM notification_filters`)
	if err != nil {
		return nil, fmt.Errorf("query filters: %w", err)
	}
	defer rows.Close()

	var filters []models.RecipientFilter
	for rows.Next() {
		var f models.RecipientFilter
		var lat, lon, radius sql.NullFloat64
		if err := rows.Scan(&f.UserID, &lat, &lon, &radius, pq.Array(&f.GroupIDs)); err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		if lat.Valid {
			f.LocationLatitude = &lat.Float64
		}
		if lon.Valid {
			f.LocationLongitude = &lon.Float64
		}
		if radius.Valid {
			f.LocationRadiusKm = &radius.Float64
		}
		filters = append(filters, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filters: %w", err)
	}
	return filters, nil
}

func (s *PostgresStore) ListParticipants(ctx context.Context, matchID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT profile_id FROM match_participants
		WHERE match_id = $1 AND profile_id IS NOT NULL`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *PostgresStore) ListThoughtAuthors(ctx context.Context, matchID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT author_id FROM match_thoughts
		WHERE match_id = $1`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query thought authors: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// InsertNotifications writes the whole batch with a single multi-row INSERT.
func (s *PostgresStore) InsertNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	const columns = 9
	placeholders := make([]string, 0, len(notifications))
	args := make([]interface{}, 0, len(notifications)*columns)
	for i, n := range notifications {
		base := i * columns
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, n.ID, n.UserID, string(n.Kind), n.Title, n.Message,
			n.Link, n.MatchID, n.Read, n.CreatedAt)
	}

	query := `INSERT INTO notifications (id, user_id, kind, title, message, link, match_id, read, created_at) VALUES ` +
		strings.Join(placeholders, ", ")

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

func scanIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
