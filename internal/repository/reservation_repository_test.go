package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

func reservation(id, user string) model.Reservation {
	return model.Reservation{
		BookingID: id, Username: user, Movie: "Cosmic Dreams", Date: "today", Time: "18:30",
		Tickets: 2, Theater: "Grand Arena", SeatType: model.SeatStandard, TotalPrice: 27.00,
		BookingDate: "2025-01-01 10:00:00", Status: model.StatusConfirmed,
	}
}

func TestReservationAppendAndList(t *testing.T) {
	repo := NewReservationRepo(store.NewMemory(), SoftCancel)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, reservation("BK10001", "guest")))
	require.NoError(t, repo.Append(ctx, reservation("BK10002", "alice")))
	require.NoError(t, repo.Append(ctx, reservation("BK10003", "guest")))

	got, err := repo.ListByUser(ctx, "guest")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BK10001", got[0].BookingID)
	assert.Equal(t, "BK10003", got[1].BookingID)

	none, err := repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReservationSoftCancel(t *testing.T) {
	repo := NewReservationRepo(store.NewMemory(), SoftCancel)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, reservation("BK10001", "guest")))

	res, err := repo.Cancel(ctx, "bk10001", "guest")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)

	stored, err := repo.Get(ctx, "BK10001", "guest")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, stored.Status)

	_, err = repo.Cancel(ctx, "BK10001", "guest")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReservationHardCancel(t *testing.T) {
	repo := NewReservationRepo(store.NewMemory(), HardCancel)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, reservation("BK10001", "guest")))
	require.NoError(t, repo.Append(ctx, reservation("BK10002", "guest")))

	_, err := repo.Cancel(ctx, "BK10001", "guest")
	require.NoError(t, err)

	got, err := repo.ListByUser(ctx, "guest")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BK10002", got[0].BookingID)
}

func TestReservationCancelNotFound(t *testing.T) {
	tests := []struct {
		description string
		id, user    string
	}{
		{"unknown id", "BK12345", "guest"},
		{"owned by someone else", "BK10001", "mallory"},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			docs := store.NewMemory()
			repo := NewReservationRepo(docs, SoftCancel)
			ctx := context.Background()
			require.NoError(t, repo.Append(ctx, reservation("BK10001", "guest")))

			_, err := repo.Cancel(ctx, test.id, test.user)
			assert.ErrorIs(t, err, ErrReservationNotFound)

			got, err := repo.ListByUser(ctx, "guest")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, model.StatusConfirmed, got[0].Status)
		})
	}
}

func TestReservationMalformedDocumentIsAnError(t *testing.T) {
	docs := store.NewMemory()
	docs.Put(ReservationDocument, []byte("not json"))
	repo := NewReservationRepo(docs, SoftCancel)
	ctx := context.Background()

	_, err := repo.ListByUser(ctx, "guest")
	assert.ErrorIs(t, err, store.ErrMalformed)
	assert.ErrorIs(t, repo.Append(ctx, reservation("BK10001", "guest")), store.ErrMalformed)
}
