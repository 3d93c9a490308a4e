package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/clock"
	domain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

var (
	family  = auth.Identity{UserID: 1, Role: models.RoleFamily}
	family2 = auth.Identity{UserID: 5, Role: models.RoleFamily}
	sitter  = auth.Identity{UserID: 2, Role: models.RoleSitter}
)

func seeded() *fakeRepo {
	r := newFakeRepo()
	r.addFamily(1)
	r.addFamily(5)
	r.addSitter(2, 10, "25.00")
	return r
}

func TestCreateBooking_CostAndInitialState(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)

	start := now.Add(24 * time.Hour)
	note := "  kids sleep at 8  "

	view, err := uc.Execute(context.Background(), CreateBookingInput{
		Caller:          family,
		SitterProfileID: 10,
		Start:           start,
		End:             start.Add(2 * time.Hour),
		Note:            &note,
	})
	require.NoError(t, err)

	assert.Equal(t, "Requested", view.Status)
	assert.True(t, view.TotalCost.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, now, view.CreatedAt)
	require.NotNil(t, view.Note)
	assert.Equal(t, "kids sleep at 8", *view.Note)

	require.NotNil(t, view.SitterName)
	assert.Equal(t, "Sit Ter", *view.SitterName)
	assert.Equal(t, "200", *view.SitterPhone)
	assert.Nil(t, view.FamilyName)
}

func TestCreateBooking_FractionalHours(t *testing.T) {
	repo := newFakeRepo()
	repo.addFamily(1)
	repo.addSitter(2, 10, "20.00")
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)

	start := now.Add(time.Hour)
	view, err := uc.Execute(context.Background(), CreateBookingInput{
		Caller: family, SitterProfileID: 10, Start: start, End: start.Add(150 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "50.00", view.TotalCost.StringFixed(2))
}

func TestCreateBooking_NormalizesToUTC(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)

	loc := time.FixedZone("BRT", -3*3600)
	start := now.Add(48 * time.Hour).In(loc)

	view, err := uc.Execute(context.Background(), CreateBookingInput{
		Caller: family, SitterProfileID: 10, Start: start, End: start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, view.StartTime.Location())
	assert.True(t, view.StartTime.Equal(start))
}

func TestCreateBooking_Rejections(t *testing.T) {
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		in   CreateBookingInput
		kind httperr.Kind
		code string
	}{
		{"sitter caller", CreateBookingInput{Caller: sitter, SitterProfileID: 10, Start: future, End: future.Add(time.Hour)}, httperr.KindForbidden, "forbidden_role"},
		{"end before start", CreateBookingInput{Caller: family, SitterProfileID: 10, Start: future, End: future.Add(-time.Minute)}, httperr.KindValidation, "invalid_time_range"},
		{"zero length", CreateBookingInput{Caller: family, SitterProfileID: 10, Start: future, End: future}, httperr.KindValidation, "invalid_time_range"},
		{"start now", CreateBookingInput{Caller: family, SitterProfileID: 10, Start: now, End: now.Add(time.Hour)}, httperr.KindValidation, "start_in_past"},
		{"start past", CreateBookingInput{Caller: family, SitterProfileID: 10, Start: now.Add(-time.Hour), End: now.Add(time.Hour)}, httperr.KindValidation, "start_in_past"},
		{"unknown sitter", CreateBookingInput{Caller: family, SitterProfileID: 99, Start: future, End: future.Add(time.Hour)}, httperr.KindNotFound, "sitter_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seeded()
			uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)

			_, err := uc.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, tc.kind), err.Error())
			assert.True(t, httperr.IsBusiness(err, tc.code), err.Error())
			assert.Empty(t, repo.bookings)
		})
	}
}

func TestCreateBooking_OverlapAllowedByDefault(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)
	start := now.Add(time.Hour)

	_, err := uc.Execute(context.Background(), CreateBookingInput{Caller: family, SitterProfileID: 10, Start: start, End: start.Add(2 * time.Hour)})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateBookingInput{Caller: family2, SitterProfileID: 10, Start: start.Add(time.Hour), End: start.Add(3 * time.Hour)})
	require.NoError(t, err)

	assert.Len(t, repo.bookings, 2)
}

func TestCreateBooking_OverlapRejectedWhenEnabled(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), true)
	start := now.Add(time.Hour)

	_, err := uc.Execute(context.Background(), CreateBookingInput{Caller: family, SitterProfileID: 10, Start: start, End: start.Add(2 * time.Hour)})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateBookingInput{Caller: family2, SitterProfileID: 10, Start: start.Add(time.Hour), End: start.Add(3 * time.Hour)})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	// back-to-back is fine
	_, err = uc.Execute(context.Background(), CreateBookingInput{Caller: family2, SitterProfileID: 10, Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour)})
	require.NoError(t, err)
}

func TestCreateBooking_OverlapIgnoresCancelled(t *testing.T) {
	repo := seeded()
	start := now.Add(time.Hour)
	repo.bookings[1] = models.Booking{ID: 1, FamilyUserID: 1, SitterProfileID: 10, StartTime: start, EndTime: start.Add(time.Hour), Status: string(domain.StatusCancelled)}
	repo.nextID = 1

	uc := NewCreateBooking(repo, nil, clock.Fixed(now), true)
	_, err := uc.Execute(context.Background(), CreateBookingInput{Caller: family, SitterProfileID: 10, Start: start, End: start.Add(time.Hour)})
	require.NoError(t, err)
}

func TestCreateBooking_PersistenceFailureIsNotBusiness(t *testing.T) {
	repo := seeded()
	repo.createErr = errors.New("connection reset")
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)
	start := now.Add(time.Hour)

	_, err := uc.Execute(context.Background(), CreateBookingInput{Caller: family, SitterProfileID: 10, Start: start, End: start.Add(time.Hour)})
	require.Error(t, err)

	_, isBusiness := httperr.AsBusiness(err)
	assert.False(t, isBusiness)
	assert.Empty(t, repo.bookings)
}

func TestCreateBooking_RateSnapshot(t *testing.T) {
	repo := seeded()
	uc := NewCreateBooking(repo, nil, clock.Fixed(now), false)
	start := now.Add(time.Hour)

	view, err := uc.Execute(context.Background(), CreateBookingInput{Caller: family, SitterProfileID: 10, Start: start, End: start.Add(time.Hour)})
	require.NoError(t, err)

	p := repo.sitters[10]
	p.HourlyRate = decimal.RequireFromString("99.00")
	repo.sitters[10] = p

	stored := repo.bookings[view.ID]
	assert.Equal(t, "25.00", stored.TotalCost.StringFixed(2))
}
