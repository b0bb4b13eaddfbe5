package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"meetapp/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sub     *domain.Subscription
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			sub:  &domain.Subscription{UserID: "user-1", MeetupID: "meetup-1", CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions \(user_id, meetup_id, meetup_date, created_at\)`).
					WithArgs("user-1", "meetup-1", createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sub-uuid-1"))
			},
			wantID: "sub-uuid-1",
		},
		{
			name: "meetup gone",
			sub:  &domain.Subscription{UserID: "user-1", MeetupID: "meetup-missing", CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions`).
					WithArgs("user-1", "meetup-missing", createdAt).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "unique violation maps to time slot conflict",
			sub:  &domain.Subscription{UserID: "user-1", MeetupID: "meetup-1", CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO subscriptions`).
					WithArgs("user-1", "meetup-1", createdAt).
					WillReturnError(&pq.Error{Code: uniqueViolation})
			},
			wantErr: domain.ErrTimeSlotConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSubscriptionRepository(db)
			err = repo.Create(ctx, tt.sub)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.sub.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriptionRepository_ExistsByUserAndDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    bool
		wantErr bool
	}{
		{
			name: "conflict exists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("user-1", date).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name: "no conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("user-1", date).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSubscriptionRepository(db)
			got, err := repo.ExistsByUserAndDate(ctx, "user-1", date)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriptionRepository_CountByMeetupID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("meetup-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewSubscriptionRepository(db)
	count, err := repo.CountByMeetupID(ctx, "meetup-1")
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_ListUpcomingByUserID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		page    domain.PaginationParams
		mock    func(mock sqlmock.Sqlmock)
		wantLen int
	}{
		{
			name: "first page",
			page: domain.PaginationParams{Page: 1, PageSize: 10},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT m.title, m.date`).
					WithArgs("user-1", now, 10, 0).
					WillReturnRows(sqlmock.NewRows([]string{"title", "date"}).
						AddRow("Go Meetup", now.Add(24*time.Hour)).
						AddRow("Rust Meetup", now.Add(48*time.Hour)))
			},
			wantLen: 2,
		},
		{
			name: "second page offsets by page size",
			page: domain.PaginationParams{Page: 2, PageSize: 10},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT m.title, m.date`).
					WithArgs("user-1", now, 10, 10).
					WillReturnRows(sqlmock.NewRows([]string{"title", "date"}))
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSubscriptionRepository(db)
			list, err := repo.ListUpcomingByUserID(ctx, "user-1", now, tt.page)
			require.NoError(t, err)
			require.Len(t, list, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriptionRepository_DeleteByUserAndMeetup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM subscriptions`).
					WithArgs("user-1", "meetup-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "nothing deleted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM subscriptions`).
					WithArgs("user-1", "meetup-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSubscriptionRepository(db)
			err = repo.DeleteByUserAndMeetup(ctx, "user-1", "meetup-1")
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
