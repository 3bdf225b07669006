package domain

import "errors"

// ErrorKind classifies a failure so the transport layer can pick a status
// code without inspecting messages.
type ErrorKind int

const (
	KindBackend ErrorKind = iota
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindRule
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindRule:
		return "rule"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "backend"
	}
}

// Error is a user-facing failure. Msg is safe to show to the caller; Err
// keeps the underlying cause for logs.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and message, so wrapped
// sentinels compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Validation(msg string) error { return newError(KindValidation, msg) }
func Rule(msg string) error { return newError(KindRule, msg) }
func NotFound(msg string) error { return newError(KindNotFound, msg) }
func Forbidden(msg string) error { return newError(KindForbidden, msg) }
func Conflict(msg string) error { return newError(KindConflict, msg) }

// Backend wraps a storage or collaborator failure. The driver text stays in
// Err and is never shown to the caller.
func Backend(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindBackend, Msg: "Something went wrong, please try again", Err: err}
}

// KindOf reports the kind of err. Errors that are not *Error are backend
// failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindBackend
}

// Message returns the caller-facing text for err.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return "Something went wrong, please try again"
}

var (
	ErrUnauthenticated = newError(KindUnauthenticated, "Not authenticated")
	ErrInvalidPayload  = newError(KindValidation, "Invalid request body")
	ErrMissingFields   = newError(KindValidation, "Missing required fields")
	ErrInvalidDate     = newError(KindValidation, "Invalid date format")
	ErrInvalidTime     = newError(KindValidation, "Invalid time format")
	ErrInvalidPrice    = newError(KindValidation, "Invalid price values")
	ErrNegativePrice   = newError(KindValidation, "Price values cannot be negative")
	ErrInvalidRating   = newError(KindValidation, "Rating must be between 1 and 5")
	ErrCommentTooShort = newError(KindValidation, "Comment must be at least 10 characters")

	ErrSpotNotFound    = newError(KindNotFound, "Parking spot not found")
	ErrSpotUnavailable = newError(KindRule, "This parking spot is not available for booking")
	ErrOwnSpot         = newError(KindRule, "You cannot book your own parking spot")
	ErrDateUnavailable = newError(KindRule, "This parking spot is not available on the selected date")
	ErrFullyBooked     = newError(KindRule, "This parking spot is fully booked for the selected date")

	ErrBookingNotFound     = newError(KindNotFound, "Booking not found")
	ErrNotBookingOwner     = newError(KindForbidden, "Not authorized to cancel this booking")
	ErrNotBookingParty     = newError(KindForbidden, "Not authorized to view this booking")
	ErrAlreadyCancelled    = newError(KindRule, "This booking is already cancelled")
	ErrCancelCompleted     = newError(KindRule, "Cannot cancel a completed booking")
	ErrCancelTooLate       = newError(KindRule, "Bookings can only be cancelled more than 24 hours in advance")
	ErrBookingNotPending   = newError(KindRule, "Only pending bookings can be confirmed")
	ErrBookingStateChanged = newError(KindConflict, "Booking was modified by another request, please retry")

	ErrNotReviewer     = newError(KindForbidden, "Not authorized to review this booking")
	ErrNotCompleted    = newError(KindRule, "Can only review completed bookings")
	ErrAlreadyReviewed = newError(KindRule, "You have already reviewed this booking")

	ErrNotSpotOwner           = newError(KindForbidden, "Not authorized")
	ErrAvailabilityNotFound   = newError(KindNotFound, "Availability not found")
	ErrAvailabilityExists     = newError(KindConflict, "Availability already set for this date")
	ErrImageNotFound          = newError(KindNotFound, "Image not found")
	ErrImageNotUploaded       = newError(KindRule, "Image has not been uploaded yet")
	ErrUnsupportedImageType   = newError(KindValidation, "Unsupported image type")
	ErrInvalidSpotType        = newError(KindValidation, "Invalid parking spot type")
	ErrInvalidSpacesAvailable = newError(KindValidation, "Spaces available must be at least 1")
	ErrListingHasBookings     = newError(KindConflict, "Listing has bookings, deactivate it instead")
)
