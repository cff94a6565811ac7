package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
	"github.com/AminePrince/bmsbackend/internal/utils"
)

type availabilityService struct {
	vehicleRepo  repository.VehicleRepository
	rentalRepo   repository.RentalRepository
	maintRepo    repository.MaintenanceRepository
	incidentRepo repository.IncidentRepository
	clientRepo   repository.ClientRepository
	clk          clock.Clock
}

func NewAvailabilityService(
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
	maintRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	clientRepo repository.ClientRepository,
	clk clock.Clock,
) AvailabilityService {
	return &availabilityService{
		vehicleRepo:  vehicleRepo,
		rentalRepo:   rentalRepo,
		maintRepo:    maintRepo,
		incidentRepo: incidentRepo,
		clientRepo:   clientRepo,
		clk:          clk,
	}
}

// overlaps is the inclusive interval test: start1 <= end2 && start2 <= end1.
// Both ends count, so a rental ending on day D conflicts with one starting
// on day D. That is deliberate: a vehicle is never double-booked on a
// turnover day.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return !clock.Day(start1).After(clock.Day(end2)) && !clock.Day(start2).After(clock.Day(end1))
}

func (s *availabilityService) GetEvents(ctx context.Context, vehicleID int32, rangeStart, rangeEnd time.Time) ([]domain.OccupancyEvent, error) {
	if clock.Day(rangeEnd).Before(clock.Day(rangeStart)) {
		return nil, &domain.ValidationError{Field: "range", Reason: "end date before start date"}
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.eventsForVehicle(ctx, vehicleID, rangeStart, rangeEnd)
}

// eventsForVehicle merges the three occupancy sources without re-checking
// the vehicle or the range; callers have already validated both.
func (s *availabilityService) eventsForVehicle(ctx context.Context, vehicleID int32, rangeStart, rangeEnd time.Time) ([]domain.OccupancyEvent, error) {
	events := []domain.OccupancyEvent{}

	rentals, err := s.rentalRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	for _, rt := range rentals {
		if rt.Status != domain.RentalStatusActive {
			continue
		}
		if !overlaps(rangeStart, rangeEnd, rt.StartDate, rt.EndDate) {
			continue
		}
		events = append(events, domain.OccupancyEvent{
			Type:      domain.OccupancyEventRental,
			StartDate: clock.Day(rt.StartDate),
			EndDate:   clock.Day(rt.EndDate),
			Status:    string(rt.Status),
			Label:     fmt.Sprintf("Location #%d (%s)", rt.ID, s.clientName(ctx, rt.ClientID)),
		})
	}

	maintenances, err := s.maintRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	for _, m := range maintenances {
		if m.Status != domain.MaintenanceStatusInProgress {
			continue
		}
		mStart := clock.Day(m.Date)
		mEnd := mStart.AddDate(0, 0, domain.MaintenanceWindowDays)
		if !overlaps(rangeStart, rangeEnd, mStart, mEnd) {
			continue
		}
		events = append(events, domain.OccupancyEvent{
			Type:      domain.OccupancyEventMaintenance,
			StartDate: mStart,
			EndDate:   mEnd,
			Status:    string(m.Status),
			Label:     m.Description,
		})
	}

	incidents, err := s.incidentRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	for _, in := range incidents {
		if !in.Immobilizes() {
			continue
		}
		iStart := clock.Day(in.Date)
		iEnd := iStart.AddDate(0, 0, domain.ImmobilizationDays)
		if !overlaps(rangeStart, rangeEnd, iStart, iEnd) {
			continue
		}
		events = append(events, domain.OccupancyEvent{
			Type:      domain.OccupancyEventBlocked,
			StartDate: iStart,
			EndDate:   iEnd,
			Status:    "immobilisé",
			Label:     in.Description,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})
	return events, nil
}

func (s *availabilityService) clientName(ctx context.Context, clientID int32) string {
	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Sprintf("Client #%d", clientID)
	}
	return c.FullName
}

func (s *availabilityService) NextAvailableDate(ctx context.Context, vehicleID int32, asOf time.Time) (domain.Availability, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return domain.Availability{}, err
	}
	return s.nextAvailable(ctx, vehicleID, asOf)
}

func (s *availabilityService) nextAvailable(ctx context.Context, vehicleID int32, asOf time.Time) (domain.Availability, error) {
	today := clock.Day(asOf)

	rentals, err := s.rentalRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return domain.Availability{}, err
	}

	var latestEnd time.Time
	found := false
	for _, rt := range rentals {
		if rt.Status != domain.RentalStatusActive {
			continue
		}
		end := clock.Day(rt.EndDate)
		if !found || end.After(latestEnd) {
			latestEnd = end
			found = true
		}
	}

	if !found {
		// No active rental. An open-ended maintenance has no computable end
		// date, so the result is indefinite rather than a guessed date.
		maintenances, err := s.maintRepo.ListByVehicle(ctx, vehicleID)
		if err != nil {
			return domain.Availability{}, err
		}
		for _, m := range maintenances {
			if m.Status == domain.MaintenanceStatusInProgress {
				return domain.Availability{Indefinite: true}, nil
			}
		}
		return domain.Availability{Date: today}, nil
	}

	if latestEnd.Before(today) {
		return domain.Availability{Date: today}, nil
	}
	return domain.Availability{Date: latestEnd.AddDate(0, 0, 1)}, nil
}

// GetRentalQuote prices the interval at the vehicle's daily rate and checks
// it against the occupancy timeline, so the front office sees cost and
// conflicts in one call before booking.
func (s *availabilityService) GetRentalQuote(ctx context.Context, vehicleID int32, rangeStart, rangeEnd time.Time) (*RentalQuoteResult, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	quote, err := utils.QuoteRentalCost(rangeStart, rangeEnd, vehicle.PricePerDay)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.eventsForVehicle(ctx, vehicleID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	return &RentalQuoteResult{
		Quote:     quote,
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *availabilityService) IsAvailableToday(ctx context.Context, vehicleID int32) (bool, error) {
	now := s.clk.Now()
	next, err := s.NextAvailableDate(ctx, vehicleID, now)
	if err != nil {
		return false, err
	}
	return !next.Indefinite && next.Date.Equal(clock.Day(now)), nil
}

func (s *availabilityService) GetFleetCalendar(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.VehicleCalendar, error) {
	if clock.Day(rangeEnd).Before(clock.Day(rangeStart)) {
		return nil, &domain.ValidationError{Field: "range", Reason: "end date before start date"}
	}

	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	asOf := s.clk.Now()
	calendar := make([]domain.VehicleCalendar, 0, len(vehicles))
	for i := range vehicles {
		v := vehicles[i]
		events, err := s.eventsForVehicle(ctx, v.ID, rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		next, err := s.nextAvailable(ctx, v.ID, asOf)
		if err != nil {
			return nil, err
		}
		calendar = append(calendar, domain.VehicleCalendar{
			Vehicle:       &v,
			Events:        events,
			NextAvailable: next,
		})
	}
	return calendar, nil
}
