package domain

import (
	"context"
	"time"
)

// Meetup represents a hosted, scheduled community event.
// swagger:model Meetup
type Meetup struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	HostID      string    `json:"host_id"`
	BannerURL   *string   `json:"banner_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Host is populated by host-joined lookups (subscription store path).
	Host *User `json:"host,omitempty"`
}

// NewMeetup returns a new Meetup with the given fields. ID is typically set by the repository on create.
func NewMeetup(title, description, location string, date time.Time, hostID string, createdAt, updatedAt time.Time) *Meetup {
	return &Meetup{
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		HostID:      hostID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// IsPast reports whether the meetup's date is strictly before now.
// Past status is always derived from the date, never stored, so it stays
// consistent no matter when the meetup row was last written.
func (m *Meetup) IsPast(now time.Time) bool {
	return m.Date.Before(now)
}

// HostedBy reports whether userID is the meetup's host.
func (m *Meetup) HostedBy(userID string) bool {
	return m.HostID == userID
}

// MeetupUpdate carries the mutable meetup fields for an update.
// Nil pointers mean "leave unchanged".
type MeetupUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Date        *time.Time
	BannerURL   *string
}

// MeetupRepository defines the interface for meetup storage.
type MeetupRepository interface {
	Create(ctx context.Context, meetup *Meetup) error
	GetByID(ctx context.Context, id string) (*Meetup, error)
	// GetByIDWithHost returns the meetup with its Host field populated.
	GetByIDWithHost(ctx context.Context, id string) (*Meetup, error)
	ListByHostID(ctx context.Context, hostID string) ([]*Meetup, error)
	Update(ctx context.Context, id string, upd MeetupUpdate) (*Meetup, error)
	Delete(ctx context.Context, id string) error
}

// MeetupService defines host-facing meetup operations. Mutations are
// restricted to the host and to meetups still in the future.
type MeetupService interface {
	Create(ctx context.Context, meetup *Meetup) error
	GetByID(ctx context.Context, meetupID string) (*Meetup, error)
	ListMine(ctx context.Context, hostID string) ([]*Meetup, error)
	Update(ctx context.Context, meetupID, hostID string, upd MeetupUpdate) (*Meetup, error)
	Cancel(ctx context.Context, meetupID, hostID string) error
}
