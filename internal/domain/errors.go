package domain

import "errors"

// Sentinel errors shared across services. The HTTP layer maps each of these
// to a stable error code; everything else surfaces as an internal error.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the acting user is not allowed to perform the
	// operation (e.g. mutating a meetup they do not host).
	ErrForbidden = errors.New("forbidden")

	// ErrSelfHostSubscription indicates a user tried to subscribe to a meetup
	// they host themselves.
	ErrSelfHostSubscription = errors.New("can't subscribe to the meetup you host")

	// ErrPastMeetup indicates the target meetup's date is already in the past.
	// Past meetups accept no subscriptions and no mutations.
	ErrPastMeetup = errors.New("meetup is in the past")

	// ErrTimeSlotConflict indicates the user already holds a subscription to a
	// meetup scheduled at the exact same instant.
	ErrTimeSlotConflict = errors.New("can't subscribe to two meetups at the same time")

	// ErrInvalidDate indicates a meetup update proposed a date in the past.
	ErrInvalidDate = errors.New("meetup date invalid")

	// ErrStorageUnavailable indicates a transient storage failure (timeout or
	// lost connection). Safe for the caller to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidInput indicates the request carried invalid fields.
	ErrInvalidInput = errors.New("invalid input")
)
