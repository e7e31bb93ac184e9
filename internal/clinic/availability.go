package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// MaxSlotsPerDay caps how many availability slots a physician may declare for
// one calendar date.
const MaxSlotsPerDay = 3

var (
	ErrDailyCapReached     = errors.New("physician already has 3 availabilities registered for this date")
	ErrAvailabilityOverlap = errors.New("time window overlaps an existing availability")
)

// AvailabilityService owns creation and query of availability slots.
type AvailabilityService struct {
	store Store
	log   zerolog.Logger
}

func NewAvailabilityService(store Store, log zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{store: store, log: log}
}

// Register validates the per-physician daily cap and the half-open overlap
// rule against the physician's existing slots for the same date, then persists
// the new slot with status available. Field-shape validation (end after start,
// positive price) happens at the API boundary.
func (s *AvailabilityService) Register(ctx context.Context, physicianID int64, date time.Time, start, end time.Duration, price float64) (*Availability, error) {
	all, err := s.store.Availabilities().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load availabilities: %w", err)
	}

	var sameDate []Availability
	for _, a := range all {
		if a.PhysicianID == physicianID && sameDay(a.Date, date) {
			sameDate = append(sameDate, a)
		}
	}

	if len(sameDate) >= MaxSlotsPerDay {
		return nil, ErrDailyCapReached
	}

	// Half-open intervals: a slot ending exactly when another starts is fine.
	for _, a := range sameDate {
		if start < a.EndTime && a.StartTime < end {
			return nil, ErrAvailabilityOverlap
		}
	}

	avail := &Availability{
		PhysicianID: physicianID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Price:       price,
		Status:      AvailabilityAvailable,
	}

	if err := s.store.Availabilities().Add(ctx, avail); err != nil {
		return nil, fmt.Errorf("insert availability: %w", err)
	}

	s.log.Info().
		Int64("physician_id", physicianID).
		Int64("availability_id", avail.ID).
		Str("date", date.Format("2006-01-02")).
		Msg("availability registered")

	return avail, nil
}

// ListByPhysician returns every slot a physician has declared, occupied ones
// included.
func (s *AvailabilityService) ListByPhysician(ctx context.Context, physicianID int64) ([]Availability, error) {
	all, err := s.store.Availabilities().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load availabilities: %w", err)
	}

	var result []Availability
	for _, a := range all {
		if a.PhysicianID == physicianID {
			result = append(result, a)
		}
	}
	return result, nil
}

// AvailabilityFilter narrows the filtered listing; every present field is
// applied conjunctively.
type AvailabilityFilter struct {
	PhysicianID *int64
	Date        *time.Time
	StartAfter  *time.Duration // start_time >=
	EndBefore   *time.Duration // end_time <=
	Price       *float64
	Page        int
	PageSize    int
}

func (s *AvailabilityService) ListFiltered(ctx context.Context, f AvailabilityFilter) ([]Availability, Page, error) {
	all, err := s.store.Availabilities().GetAll(ctx)
	if err != nil {
		return nil, Page{}, fmt.Errorf("load availabilities: %w", err)
	}

	var filtered []Availability
	for _, a := range all {
		if f.PhysicianID != nil && a.PhysicianID != *f.PhysicianID {
			continue
		}
		if f.Date != nil && !sameDay(a.Date, *f.Date) {
			continue
		}
		if f.StartAfter != nil && a.StartTime < *f.StartAfter {
			continue
		}
		if f.EndBefore != nil && a.EndTime > *f.EndBefore {
			continue
		}
		if f.Price != nil && a.Price != *f.Price {
			continue
		}
		filtered = append(filtered, a)
	}

	paged, meta := Paginate(filtered, f.Page, f.PageSize)
	return paged, meta, nil
}
