package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"meetapp/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type subscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{DB: db}
}

// Create inserts the subscription together with the denormalized meetup date,
// so the (user_id, meetup_date) unique index closes the check-then-insert race
// against concurrent admissions. A constraint violation surfaces as
// domain.ErrTimeSlotConflict.
func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, meetup_id, meetup_date, created_at)
		SELECT $1, m.id, m.date, $3
		FROM meetups m
		WHERE m.id = $2
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, sub.UserID, sub.MeetupID, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrTimeSlotConflict
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM subscriptions s
			JOIN meetups m ON m.id = s.meetup_id
			WHERE s.user_id = $1 AND m.date = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *subscriptionRepository) CountByMeetupID(ctx context.Context, meetupID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM subscriptions
		WHERE meetup_id = $1
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, meetupID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepository) ListUpcomingByUserID(ctx context.Context, userID string, now time.Time, page domain.PaginationParams) ([]*domain.UpcomingMeetup, error) {
	query := `
		SELECT m.title, m.date
		FROM subscriptions s
		JOIN meetups m ON m.id = s.meetup_id
		WHERE s.user_id = $1 AND m.date >= $2
		ORDER BY m.date ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, now, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.UpcomingMeetup, 0)
	for rows.Next() {
		u := &domain.UpcomingMeetup{}
		if err := rows.Scan(&u.Title, &u.Date); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *subscriptionRepository) DeleteByUserAndMeetup(ctx context.Context, userID, meetupID string) error {
	query := `DELETE FROM subscriptions WHERE user_id = $1 AND meetup_id = $2`
	result, err := r.DB.ExecContext(ctx, query, userID, meetupID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
