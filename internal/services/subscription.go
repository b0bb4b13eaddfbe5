package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetapp/internal/clock"
	"meetapp/internal/domain"
)

type subscriptionService struct {
	meetupRepo       domain.MeetupRepository
	subscriptionRepo domain.SubscriptionRepository
	userRepo         domain.UserRepository
	publisher        domain.JobPublisher
	clock            clock.Clock
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewSubscriptionService creates a SubscriptionService with the given repositories,
// job publisher, and clock.
func NewSubscriptionService(
	meetupRepo domain.MeetupRepository,
	subscriptionRepo domain.SubscriptionRepository,
	userRepo domain.UserRepository,
	publisher domain.JobPublisher,
	clk clock.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SubscriptionService {
	return &subscriptionService{
		meetupRepo:       meetupRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		clock:            clk,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// Subscribe runs the admission checks in order (self-host, past meetup,
// time-slot conflict), persists the subscription, and then queues a
// notification job for the host. The checks short-circuit on the first
// failure; the storage uniqueness constraint backs the conflict check against
// concurrent admissions for the same slot.
func (s *subscriptionService) Subscribe(ctx context.Context, userID, meetupID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	subscriber, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr(fmt.Errorf("get user: %w", err))
	}

	meetup, err := s.meetupRepo.GetByIDWithHost(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr(fmt.Errorf("get meetup: %w", err))
	}

	if meetup.HostedBy(userID) {
		return nil, domain.ErrSelfHostSubscription
	}
	if meetup.IsPast(s.clock.Now()) {
		return nil, domain.ErrPastMeetup
	}

	conflict, err := s.subscriptionRepo.ExistsByUserAndDate(ctx, userID, meetup.Date)
	if err != nil {
		return nil, storageErr(fmt.Errorf("check time slot: %w", err))
	}
	if conflict {
		return nil, domain.ErrTimeSlotConflict
	}

	sub := domain.NewSubscription(userID, meetupID, s.clock.Now())
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		// A concurrent admission for the same slot loses the race at the
		// storage constraint; surface the same conflict outcome.
		if errors.Is(err, domain.ErrTimeSlotConflict) {
			return nil, domain.ErrTimeSlotConflict
		}
		return nil, storageErr(fmt.Errorf("create subscription: %w", err))
	}

	// The subscription is durable from here on. Notification is best-effort:
	// count and publish failures are logged, never returned.
	s.notifyHost(ctx, meetup, subscriber)

	return sub, nil
}

// notifyHost builds the job payload after the insert so the subscriber count
// includes the just-created subscription, then publishes it.
func (s *subscriptionService) notifyHost(ctx context.Context, meetup *domain.Meetup, subscriber *domain.User) {
	count, err := s.subscriptionRepo.CountByMeetupID(ctx, meetup.ID)
	if err != nil {
		s.logger.Error("count subscribers for notification", "meetup_id", meetup.ID, "err", err)
		return
	}

	snapshot := domain.MeetupSnapshot{
		ID:       meetup.ID,
		Title:    meetup.Title,
		Date:     meetup.Date.Format(time.RFC3339),
		Location: meetup.Location,
	}
	if meetup.Host != nil {
		snapshot.HostName = meetup.Host.Name
		snapshot.HostMail = meetup.Host.Email
	}
	job := &domain.SubscriptionJob{
		Meetup:          snapshot,
		SubscriberID:    subscriber.ID,
		SubscriberName:  subscriber.Name,
		SubscriberCount: count,
	}
	if err := s.publisher.Publish(ctx, domain.SubscriptionJobKind, job); err != nil {
		s.logger.Error("enqueue subscription notification", "meetup_id", meetup.ID, "subscriber_id", subscriber.ID, "err", err)
	}
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, meetupID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageErr(fmt.Errorf("get meetup: %w", err))
	}
	if meetup.IsPast(s.clock.Now()) {
		return domain.ErrPastMeetup
	}

	if err := s.subscriptionRepo.DeleteByUserAndMeetup(ctx, userID, meetupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageErr(fmt.Errorf("delete subscription: %w", err))
	}
	return nil
}

func (s *subscriptionService) ListUpcoming(ctx context.Context, userID string, page int) ([]*domain.UpcomingMeetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	params := domain.PaginationParams{Page: page, PageSize: domain.SubscriptionPageSize}
	list, err := s.subscriptionRepo.ListUpcomingByUserID(ctx, userID, s.clock.Now(), params)
	if err != nil {
		return nil, storageErr(fmt.Errorf("list upcoming subscriptions: %w", err))
	}
	if list == nil {
		list = []*domain.UpcomingMeetup{}
	}
	return list, nil
}

// storageErr maps storage timeouts to the retryable ErrStorageUnavailable.
// Other errors pass through wrapped.
func storageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStorageUnavailable
	}
	return err
}
