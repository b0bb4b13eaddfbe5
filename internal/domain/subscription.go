package domain

import (
	"context"
	"time"
)

// Subscription represents a user's intent to attend a specific meetup.
// swagger:model Subscription
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MeetupID  string    `json:"meetup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubscription creates a new Subscription. ID is typically set by the repository on create.
func NewSubscription(userID, meetupID string, createdAt time.Time) *Subscription {
	return &Subscription{
		UserID:    userID,
		MeetupID:  meetupID,
		CreatedAt: createdAt,
	}
}

// UpcomingMeetup is the projection returned when listing a user's
// subscriptions. Only the meetup title and date are disclosed.
// swagger:model UpcomingMeetup
type UpcomingMeetup struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// SubscriptionRepository defines storage operations for subscriptions.
type SubscriptionRepository interface {
	// Create inserts the subscription. A concurrent insert for the same user
	// and time slot trips the storage uniqueness constraint, which Create
	// surfaces as ErrTimeSlotConflict.
	Create(ctx context.Context, sub *Subscription) error
	// ExistsByUserAndDate reports whether the user holds any subscription to a
	// meetup scheduled at exactly date.
	ExistsByUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error)
	CountByMeetupID(ctx context.Context, meetupID string) (int, error)
	// ListUpcomingByUserID returns (title, date) pairs for the user's future
	// meetups, ascending by date, paginated.
	ListUpcomingByUserID(ctx context.Context, userID string, now time.Time, page PaginationParams) ([]*UpcomingMeetup, error)
	DeleteByUserAndMeetup(ctx context.Context, userID, meetupID string) error
}

// SubscriptionService defines subscriber-facing operations. Subscribe is the
// admission decision: it either persists a subscription and queues a
// host notification, or rejects with a typed reason.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, meetupID string) (*Subscription, error)
	Unsubscribe(ctx context.Context, userID, meetupID string) error
	ListUpcoming(ctx context.Context, userID string, page int) ([]*UpcomingMeetup, error)
}
