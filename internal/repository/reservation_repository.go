package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

// ReservationDocument is the name of the reservations document.
const ReservationDocument = "bookings"

// CancelPolicy selects what Cancel does to a reservation.
type CancelPolicy string

const (
	// SoftCancel keeps the reservation and sets its status to cancelled.
	SoftCancel CancelPolicy = "soft"
	// HardCancel removes the reservation from the document.
	HardCancel CancelPolicy = "hard"
)

type bookingsDoc struct {
	Bookings []model.Reservation `json:"bookings"`
}

// ReservationRepo appends, lists and cancels reservations.  Every
// mutation is a full read, in-memory update and full rewrite of the
// document inside one critical section, so concurrent turns cannot
// lose each other's writes.
type ReservationRepo struct {
	docs   store.Documents
	policy CancelPolicy
	mu     sync.Mutex
}

// NewReservationRepo constructs a ReservationRepo.  An unknown policy
// falls back to SoftCancel.
func NewReservationRepo(docs store.Documents, policy CancelPolicy) *ReservationRepo {
	if policy != HardCancel {
		policy = SoftCancel
	}
	return &ReservationRepo{docs: docs, policy: policy}
}

// Policy reports the cancellation policy in effect.
func (r *ReservationRepo) Policy() CancelPolicy { return r.policy }

// load reads the document.  A missing document is an empty one; any
// other failure, including a malformed document, is returned.
func (r *ReservationRepo) load(ctx context.Context) (bookingsDoc, error) {
	var doc bookingsDoc
	if err := r.docs.Read(ctx, ReservationDocument, &doc); err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return bookingsDoc{Bookings: []model.Reservation{}}, nil
		}
		return bookingsDoc{}, fmt.Errorf("load reservations: %w", err)
	}
	if doc.Bookings == nil {
		doc.Bookings = []model.Reservation{}
	}
	return doc, nil
}

// Append stores a new reservation.
func (r *ReservationRepo) Append(ctx context.Context, res model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Bookings = append(doc.Bookings, res)
	if err := r.docs.Replace(ctx, ReservationDocument, doc); err != nil {
		return fmt.Errorf("save reservations: %w", err)
	}
	return nil
}

// ListByUser returns the reservations of username in creation order.
func (r *ReservationRepo) ListByUser(ctx context.Context, username string) ([]model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Reservation, 0)
	for _, b := range doc.Bookings {
		if b.Username == username {
			out = append(out, b)
		}
	}
	return out, nil
}

// Get returns the reservation with the given id if it belongs to
// username.
func (r *ReservationRepo) Get(ctx context.Context, id, username string) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return model.Reservation{}, err
	}
	for _, b := range doc.Bookings {
		if strings.EqualFold(b.BookingID, id) && b.Username == username {
			return b, nil
		}
	}
	return model.Reservation{}, ErrReservationNotFound
}

// Cancel cancels the reservation with the given id on behalf of
// username, according to the repository's policy.  It returns the
// reservation as it was before removal (hard) or after the status
// change (soft).  ErrReservationNotFound is returned when the id is
// unknown or owned by someone else, ErrConflict when a soft-cancelled
// reservation is cancelled again.  On error the document is untouched.
func (r *ReservationRepo) Cancel(ctx context.Context, id, username string) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return model.Reservation{}, err
	}
	idx := -1
	for i, b := range doc.Bookings {
		if strings.EqualFold(b.BookingID, id) && b.Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Reservation{}, ErrReservationNotFound
	}

	res := doc.Bookings[idx]
	switch r.policy {
	case HardCancel:
		doc.Bookings = append(doc.Bookings[:idx], doc.Bookings[idx+1:]...)
	default:
		if res.Status == model.StatusCancelled {
			return res, ErrConflict
		}
		res.Status = model.StatusCancelled
		doc.Bookings[idx] = res
	}
	if err := r.docs.Replace(ctx, ReservationDocument, doc); err != nil {
		return model.Reservation{}, fmt.Errorf("save reservations: %w", err)
	}
	return res, nil
}
