package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"meetapp/internal/domain"
)

type meetupRepository struct {
	DB *sql.DB
}

func NewMeetupRepository(db *sql.DB) domain.MeetupRepository {
	return &meetupRepository{DB: db}
}

func (r *meetupRepository) Create(ctx context.Context, m *domain.Meetup) error {
	query := `
		INSERT INTO meetups (title, description, location, date, host_id, banner_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, m.Title, m.Description, m.Location, m.Date, m.HostID, m.BannerURL, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
}

func (r *meetupRepository) GetByID(ctx context.Context, id string) (*domain.Meetup, error) {
	query := `
		SELECT id, title, description, location, date, host_id, banner_url, created_at, updated_at
		FROM meetups
		WHERE id = $1
	`
	m := &domain.Meetup{}
	var bannerNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &m.HostID, &bannerNull, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bannerNull.Valid {
		m.BannerURL = &bannerNull.String
	}
	return m, nil
}

func (r *meetupRepository) GetByIDWithHost(ctx context.Context, id string) (*domain.Meetup, error) {
	query := `
		SELECT m.id, m.title, m.description, m.location, m.date, m.host_id, m.banner_url, m.created_at, m.updated_at,
		       u.id, u.email, u.name
		FROM meetups m
		JOIN users u ON u.id = m.host_id
		WHERE m.id = $1
	`
	m := &domain.Meetup{}
	host := &domain.User{}
	var bannerNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &m.HostID, &bannerNull, &m.CreatedAt, &m.UpdatedAt,
		&host.ID, &host.Email, &host.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bannerNull.Valid {
		m.BannerURL = &bannerNull.String
	}
	m.Host = host
	return m, nil
}

func (r *meetupRepository) ListByHostID(ctx context.Context, hostID string) ([]*domain.Meetup, error) {
	query := `
		SELECT id, title, description, location, date, host_id, banner_url, created_at, updated_at
		FROM meetups
		WHERE host_id = $1
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	meetups := make([]*domain.Meetup, 0)
	for rows.Next() {
		m := &domain.Meetup{}
		var bannerNull sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &m.HostID, &bannerNull, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		if bannerNull.Valid {
			m.BannerURL = &bannerNull.String
		}
		meetups = append(meetups, m)
	}
	return meetups, rows.Err()
}

func (r *meetupRepository) Update(ctx context.Context, id string, upd domain.MeetupUpdate) (*domain.Meetup, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *upd.Date)
		n++
	}
	if upd.BannerURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("banner_url = $%d", n))
		args = append(args, *upd.BannerURL)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE meetups SET %s
		WHERE id = $%d
		RETURNING id, title, description, location, date, host_id, banner_url, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)

	if upd.Date == nil {
		m, err := scanMeetupRow(r.DB.QueryRowContext(ctx, query, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		return m, nil
	}

	// A date change must also rewrite the denormalized meetup_date on existing
	// subscription rows, or the (user_id, meetup_date) unique index keeps
	// conflicting on the old slot. Both writes commit together.
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := scanMeetupRow(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE subscriptions SET meetup_date = $1 WHERE meetup_id = $2`, *upd.Date, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

func scanMeetupRow(row *sql.Row) (*domain.Meetup, error) {
	m := &domain.Meetup{}
	var bannerNull sql.NullString
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Location, &m.Date, &m.HostID, &bannerNull, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bannerNull.Valid {
		m.BannerURL = &bannerNull.String
	}
	return m, nil
}

func (r *meetupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meetups WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
