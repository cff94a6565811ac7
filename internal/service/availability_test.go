package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
)

func newAvailabilityFixture(now time.Time) (*fakeVehicleRepo, *fakeRentalRepo, *fakeMaintenanceRepo, *fakeIncidentRepo, AvailabilityService) {
	vehicles := &fakeVehicleRepo{vehicles: []domain.Vehicle{
		{ID: 1, Brand: "Dacia", Model: "Logan", LicensePlate: "12345-A-6", PricePerDay: dec("250")},
	}}
	rentals := &fakeRentalRepo{}
	maintenances := &fakeMaintenanceRepo{}
	incidents := &fakeIncidentRepo{vehicleOf: map[int32]int32{}}
	clients := &fakeClientRepo{clients: []domain.Client{{ID: 7, FullName: "Karim Alaoui"}}}

	svc := NewAvailabilityService(vehicles, rentals, maintenances, incidents, clients, clock.Fixed(now))
	return vehicles, rentals, maintenances, incidents, svc
}

func TestGetEvents(t *testing.T) {
	now := day(2024, time.March, 10)
	ctx := context.Background()

	t.Run("Active rental produces a labeled event", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 11, VehicleID: 1, ClientID: 7, StartDate: day(2024, time.March, 12), EndDate: day(2024, time.March, 15), Status: domain.RentalStatusActive},
		}

		events, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)

		require.Len(t, events, 1)
		assert.Equal(t, domain.OccupancyEventRental, events[0].Type)
		assert.Equal(t, "Location #11 (Karim Alaoui)", events[0].Label)
		assert.True(t, events[0].StartDate.Equal(day(2024, time.March, 12)))
		assert.True(t, events[0].EndDate.Equal(day(2024, time.March, 15)))
	})

	t.Run("Completed and cancelled rentals never occupy", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.March, 2), EndDate: day(2024, time.March, 5), Status: domain.RentalStatusCompleted},
			{ID: 2, VehicleID: 1, StartDate: day(2024, time.March, 7), EndDate: day(2024, time.March, 9), Status: domain.RentalStatusCancelled},
		}

		events, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("In-progress maintenance occupies a one-day window", func(t *testing.T) {
		_, _, maintenances, _, svc := newAvailabilityFixture(now)
		maintenances.maintenances = []domain.Maintenance{
			{ID: 3, VehicleID: 1, Type: domain.MaintenanceTypeOilChange, Date: day(2024, time.March, 20), Status: domain.MaintenanceStatusInProgress, Description: "Vidange"},
			{ID: 4, VehicleID: 1, Date: day(2024, time.March, 22), Status: domain.MaintenanceStatusDone},
		}

		events, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)

		require.Len(t, events, 1)
		assert.Equal(t, domain.OccupancyEventMaintenance, events[0].Type)
		assert.True(t, events[0].StartDate.Equal(day(2024, time.March, 20)))
		assert.True(t, events[0].EndDate.Equal(day(2024, time.March, 21)))
	})

	t.Run("Accident immobilizes the vehicle for three days", func(t *testing.T) {
		_, _, _, incidents, svc := newAvailabilityFixture(now)
		incidents.incidents = []domain.Incident{
			{ID: 8, RentalID: 11, Type: domain.IncidentTypeAccident, Date: day(2024, time.April, 1), Description: "Accrochage parking"},
		}
		incidents.vehicleOf[8] = 1

		events, err := svc.GetEvents(ctx, 1, day(2024, time.April, 1), day(2024, time.April, 30))
		require.NoError(t, err)

		require.Len(t, events, 1)
		assert.Equal(t, domain.OccupancyEventBlocked, events[0].Type)
		assert.Equal(t, "immobilisé", events[0].Status)
		assert.True(t, events[0].StartDate.Equal(day(2024, time.April, 1)))
		assert.True(t, events[0].EndDate.Equal(day(2024, time.April, 4)))
	})

	t.Run("Fines never occupy", func(t *testing.T) {
		_, _, _, incidents, svc := newAvailabilityFixture(now)
		incidents.incidents = []domain.Incident{
			{ID: 9, RentalID: 11, Type: domain.IncidentTypeFine, Date: day(2024, time.April, 1)},
		}
		incidents.vehicleOf[9] = 1

		events, err := svc.GetEvents(ctx, 1, day(2024, time.April, 1), day(2024, time.April, 30))
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("Events outside the range are excluded, boundary overlap included", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.February, 25), EndDate: day(2024, time.March, 1), Status: domain.RentalStatusActive},
			{ID: 2, VehicleID: 1, StartDate: day(2024, time.April, 1), EndDate: day(2024, time.April, 3), Status: domain.RentalStatusActive},
		}

		events, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)

		// The rental ending on March 1 touches the range start; the April one is out.
		require.Len(t, events, 1)
		assert.True(t, events[0].EndDate.Equal(day(2024, time.March, 1)))
	})

	t.Run("Events are sorted by start date", func(t *testing.T) {
		_, rentals, maintenances, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.March, 20), EndDate: day(2024, time.March, 25), Status: domain.RentalStatusActive},
		}
		maintenances.maintenances = []domain.Maintenance{
			{ID: 2, VehicleID: 1, Date: day(2024, time.March, 5), Status: domain.MaintenanceStatusInProgress},
		}

		events, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, domain.OccupancyEventMaintenance, events[0].Type)
		assert.Equal(t, domain.OccupancyEventRental, events[1].Type)
	})

	t.Run("Inverted range is rejected", func(t *testing.T) {
		_, _, _, _, svc := newAvailabilityFixture(now)

		var validation *domain.ValidationError
		_, err := svc.GetEvents(ctx, 1, day(2024, time.March, 31), day(2024, time.March, 1))
		require.True(t, errors.As(err, &validation))
	})

	t.Run("Unknown vehicle is rejected", func(t *testing.T) {
		_, _, _, _, svc := newAvailabilityFixture(now)

		_, err := svc.GetEvents(ctx, 99, day(2024, time.March, 1), day(2024, time.March, 31))
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Resolution is idempotent", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.March, 12), EndDate: day(2024, time.March, 15), Status: domain.RentalStatusActive},
		}

		first, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)
		second, err := svc.GetEvents(ctx, 1, day(2024, time.March, 1), day(2024, time.March, 31))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestNextAvailableDate(t *testing.T) {
	now := day(2024, time.March, 10)
	ctx := context.Background()

	t.Run("Day after the latest active rental", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.March, 8), EndDate: day(2024, time.March, 14), Status: domain.RentalStatusActive},
			{ID: 2, VehicleID: 1, StartDate: day(2024, time.March, 16), EndDate: day(2024, time.March, 20), Status: domain.RentalStatusActive},
		}

		next, err := svc.NextAvailableDate(ctx, 1, now)
		require.NoError(t, err)

		assert.False(t, next.Indefinite)
		assert.True(t, next.Date.Equal(day(2024, time.March, 21)))
	})

	t.Run("No active rentals means available today", func(t *testing.T) {
		_, _, _, _, svc := newAvailabilityFixture(now)

		next, err := svc.NextAvailableDate(ctx, 1, now)
		require.NoError(t, err)

		assert.False(t, next.Indefinite)
		assert.True(t, next.Date.Equal(now))
	})

	t.Run("Open-ended maintenance yields an indefinite result", func(t *testing.T) {
		_, _, maintenances, _, svc := newAvailabilityFixture(now)
		maintenances.maintenances = []domain.Maintenance{
			{ID: 1, VehicleID: 1, Date: day(2024, time.March, 9), Status: domain.MaintenanceStatusInProgress},
		}

		next, err := svc.NextAvailableDate(ctx, 1, now)
		require.NoError(t, err)
		assert.True(t, next.Indefinite)
	})

	t.Run("Stale active rental in the past means available today", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.February, 1), EndDate: day(2024, time.February, 5), Status: domain.RentalStatusActive},
		}

		next, err := svc.NextAvailableDate(ctx, 1, now)
		require.NoError(t, err)
		assert.True(t, next.Date.Equal(now))
	})
}

func TestIsAvailableToday(t *testing.T) {
	now := day(2024, time.March, 10)
	ctx := context.Background()

	_, rentals, _, _, svc := newAvailabilityFixture(now)
	ok, err := svc.IsAvailableToday(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	rentals.rentals = []domain.Rental{
		{ID: 1, VehicleID: 1, StartDate: day(2024, time.March, 8), EndDate: day(2024, time.March, 14), Status: domain.RentalStatusActive},
	}
	ok, err = svc.IsAvailableToday(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetFleetCalendar(t *testing.T) {
	now := day(2024, time.March, 10)
	ctx := context.Background()

	vehicles, rentals, _, _, svc := newAvailabilityFixture(now)
	vehicles.vehicles = append(vehicles.vehicles, domain.Vehicle{ID: 2, Brand: "Renault", Model: "Clio", PricePerDay: dec("300")})
	rentals.rentals = []domain.Rental{
		{ID: 1, VehicleID: 1, ClientID: 7, StartDate: day(2024, time.March, 12), EndDate: day(2024, time.March, 15), Status: domain.RentalStatusActive},
	}

	calendar, err := svc.GetFleetCalendar(ctx, day(2024, time.March, 1), day(2024, time.March, 31))
	require.NoError(t, err)

	require.Len(t, calendar, 2)
	assert.Equal(t, int32(1), calendar[0].Vehicle.ID)
	require.Len(t, calendar[0].Events, 1)
	assert.True(t, calendar[0].NextAvailable.Date.Equal(day(2024, time.March, 16)))

	assert.Equal(t, int32(2), calendar[1].Vehicle.ID)
	assert.Empty(t, calendar[1].Events)
	assert.True(t, calendar[1].NextAvailable.Date.Equal(now))
}

func TestGetRentalQuote(t *testing.T) {
	now := day(2024, time.March, 10)
	ctx := context.Background()

	t.Run("Free interval is priced at days times daily rate", func(t *testing.T) {
		_, _, _, _, svc := newAvailabilityFixture(now)

		result, err := svc.GetRentalQuote(ctx, 1, day(2024, time.March, 12), day(2024, time.March, 15))
		require.NoError(t, err)

		assert.True(t, result.Available)
		assert.Equal(t, 4, result.Quote.Days)
		assert.True(t, result.Quote.TotalCost.Equal(dec("1000")))
	})

	t.Run("Conflicting rental marks the quote unavailable", func(t *testing.T) {
		_, rentals, _, _, svc := newAvailabilityFixture(now)
		rentals.rentals = []domain.Rental{
			{ID: 1, VehicleID: 1, StartDate: day(2024, time.March, 14), EndDate: day(2024, time.March, 18), Status: domain.RentalStatusActive},
		}

		result, err := svc.GetRentalQuote(ctx, 1, day(2024, time.March, 12), day(2024, time.March, 15))
		require.NoError(t, err)

		assert.False(t, result.Available)
		require.Len(t, result.Conflicts, 1)
	})
}
