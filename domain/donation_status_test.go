package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationStatusTransitions(t *testing.T) {
	all := []DonationStatus{StatusAvailable, StatusAssigned, StatusInTransit, StatusDelivered, StatusCancelled}
	allowed := map[DonationStatus]map[DonationStatus]bool{
		StatusAvailable: {StatusAssigned: true, StatusCancelled: true},
		StatusAssigned:  {StatusInTransit: true, StatusCancelled: true},
		StatusInTransit: {StatusDelivered: true, StatusCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)

			err := from.CheckTransition(to)
			if want {
				assert.NoError(t, err)
				continue
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
		}
	}
}

func TestDonationStatusProperties(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusInTransit.Terminal())

	assert.False(t, StatusAvailable.HasVolunteer())
	assert.True(t, StatusAssigned.HasVolunteer())
	assert.True(t, StatusDelivered.HasVolunteer())
	assert.False(t, StatusCancelled.HasVolunteer())

	assert.True(t, StatusInTransit.Valid())
	assert.False(t, DonationStatus("pending").Valid())
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrDonationUnavailable, ErrConflict)
	assert.ErrorIs(t, ErrNotAssignedVolunteer, ErrForbidden)
	assert.ErrorIs(t, ErrDonationNotFound, ErrNotFound)
	assert.ErrorIs(t, Wrapf(ErrValidation, "field %s", "city"), ErrValidation)
	assert.EqualError(t, Wrapf(ErrValidation, "field %s", "city"), "field city")
	assert.NotErrorIs(t, ErrExpiryNotInFuture, ErrConflict)
}

func TestEstimates(t *testing.T) {
	assert.InDelta(t, 10.0, EstimateKg(Quantity{Amount: 10, Unit: "KG"}), 1e-9)
	assert.InDelta(t, 0.5, EstimateKg(Quantity{Amount: 500, Unit: "g"}), 1e-9)
	assert.InDelta(t, 5.0, EstimateKg(Quantity{Amount: 20, Unit: "servings"}), 1e-9)
	assert.InDelta(t, 25.0, EstimateCarbonSaved(Quantity{Amount: 10, Unit: "kg"}), 1e-9)
	assert.Equal(t, 20, EstimatePeopleServed(Quantity{Amount: 10, Unit: "kg"}))
	assert.Equal(t, MaxPeopleServed, EstimatePeopleServed(Quantity{Amount: 1e19, Unit: "kg"}))
}

func TestSaturatingInt(t *testing.T) {
	assert.Equal(t, 0, SaturatingInt(-5, 10))
	assert.Equal(t, 7, SaturatingInt(7.9, 10))
	assert.Equal(t, 10, SaturatingInt(1e300, 10))
	assert.Equal(t, 0, SaturatingInt(math.NaN(), 10))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 21)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, 2, p.Page)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
}

func TestDonationHistoryFilterCreatedBefore(t *testing.T) {
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	condition, bound := DonationHistoryFilter{EndDate: &end, EndDateOnly: true}.CreatedBefore()
	assert.Equal(t, "created_at < ?", condition)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), bound)

	condition, bound = DonationHistoryFilter{EndDate: &end}.CreatedBefore()
	assert.Equal(t, "created_at <= ?", condition)
	assert.Equal(t, end, bound)
}
