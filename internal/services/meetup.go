package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetapp/internal/clock"
	"meetapp/internal/domain"
)

type meetupService struct {
	meetupRepo     domain.MeetupRepository
	clock          clock.Clock
	contextTimeout time.Duration
}

// NewMeetupService creates a MeetupService with the given repository and clock.
func NewMeetupService(meetupRepo domain.MeetupRepository, clk clock.Clock, timeout time.Duration) domain.MeetupService {
	return &meetupService{
		meetupRepo:     meetupRepo,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *meetupService) Create(ctx context.Context, meetup *domain.Meetup) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if meetup.HostID == "" {
		return fmt.Errorf("meetup host is required: %w", domain.ErrInvalidInput)
	}
	now := s.clock.Now()
	if meetup.Date.Before(now) {
		return domain.ErrInvalidDate
	}

	meetup.CreatedAt = now
	meetup.UpdatedAt = now
	if err := s.meetupRepo.Create(ctx, meetup); err != nil {
		return storageErr(fmt.Errorf("create meetup: %w", err))
	}
	return nil
}

func (s *meetupService) GetByID(ctx context.Context, meetupID string) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr(fmt.Errorf("get meetup: %w", err))
	}
	return meetup, nil
}

func (s *meetupService) ListMine(ctx context.Context, hostID string) ([]*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetups, err := s.meetupRepo.ListByHostID(ctx, hostID)
	if err != nil {
		return nil, storageErr(fmt.Errorf("list meetups: %w", err))
	}
	if meetups == nil {
		meetups = []*domain.Meetup{}
	}
	return meetups, nil
}

// Update applies the mutation guard before writing: only the host may update,
// the proposed date must not be in the past, and a meetup already in the past
// is frozen regardless of what the update proposes.
func (s *meetupService) Update(ctx context.Context, meetupID, hostID string, upd domain.MeetupUpdate) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr(fmt.Errorf("get meetup: %w", err))
	}
	if !meetup.HostedBy(hostID) {
		return nil, domain.ErrForbidden
	}
	now := s.clock.Now()
	if upd.Date != nil && upd.Date.Before(now) {
		return nil, domain.ErrInvalidDate
	}
	if meetup.IsPast(now) {
		return nil, domain.ErrPastMeetup
	}

	updated, err := s.meetupRepo.Update(ctx, meetupID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr(fmt.Errorf("update meetup: %w", err))
	}
	return updated, nil
}

// Cancel deletes a meetup. Only the host may cancel, and only while the
// meetup is still in the future.
func (s *meetupService) Cancel(ctx context.Context, meetupID, hostID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meetup, err := s.meetupRepo.GetByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageErr(fmt.Errorf("get meetup: %w", err))
	}
	if !meetup.HostedBy(hostID) {
		return domain.ErrForbidden
	}
	if meetup.IsPast(s.clock.Now()) {
		return domain.ErrPastMeetup
	}

	if err := s.meetupRepo.Delete(ctx, meetupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageErr(fmt.Errorf("delete meetup: %w", err))
	}
	return nil
}
