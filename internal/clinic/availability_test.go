package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestAvailability(store Store) *AvailabilityService {
	return NewAvailabilityService(store, zerolog.Nop())
}

func TestRegisterAvailability(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestAvailability(store)

	phys := Physician{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &phys))

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	avail, err := svc.Register(ctx, phys.ID, date, 9*time.Hour, 10*time.Hour, 50)
	require.NoError(t, err)
	require.NotZero(t, avail.ID)
	require.Equal(t, AvailabilityAvailable, avail.Status)
	require.Equal(t, 50.0, avail.Price)
}

func TestRegisterAvailabilityDailyCap(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestAvailability(store)

	phys := Physician{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &phys))

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxSlotsPerDay; i++ {
		start := time.Duration(9+2*i) * time.Hour
		_, err := svc.Register(ctx, phys.ID, date, start, start+time.Hour, 50)
		require.NoError(t, err)
	}

	_, err := svc.Register(ctx, phys.ID, date, 16*time.Hour, 17*time.Hour, 50)
	require.ErrorIs(t, err, ErrDailyCapReached)

	// A different date and a different physician are unaffected by the cap.
	_, err = svc.Register(ctx, phys.ID, date.AddDate(0, 0, 1), 9*time.Hour, 10*time.Hour, 50)
	require.NoError(t, err)

	other := Physician{Name: "Dr. Iker Soto", Specialty: "Dermatology", Email: "iker@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &other))
	_, err = svc.Register(ctx, other.ID, date, 9*time.Hour, 10*time.Hour, 50)
	require.NoError(t, err)
}

func TestRegisterAvailabilityOverlap(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestAvailability(store)

	phys := Physician{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &phys))

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	_, err := svc.Register(ctx, phys.ID, date, 9*time.Hour, 11*time.Hour, 50)
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end time.Duration
	}{
		{"starts inside", 10 * time.Hour, 12 * time.Hour},
		{"ends inside", 8 * time.Hour, 10 * time.Hour},
		{"fully contained", 9*time.Hour + 30*time.Minute, 10 * time.Hour},
		{"fully covering", 8 * time.Hour, 12 * time.Hour},
		{"identical", 9 * time.Hour, 11 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, phys.ID, date, tc.start, tc.end, 50)
			require.ErrorIs(t, err, ErrAvailabilityOverlap)
		})
	}

	// Half-open windows: touching endpoints do not overlap.
	_, err = svc.Register(ctx, phys.ID, date, 11*time.Hour, 12*time.Hour, 50)
	require.NoError(t, err)
}

func TestListFilteredAvailabilities(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestAvailability(store)

	phys := Physician{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &phys))
	other := Physician{Name: "Dr. Iker Soto", Specialty: "Dermatology", Email: "iker@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &other))

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	_, err := svc.Register(ctx, phys.ID, date, 9*time.Hour, 10*time.Hour, 50)
	require.NoError(t, err)
	_, err = svc.Register(ctx, phys.ID, date, 14*time.Hour, 15*time.Hour, 75)
	require.NoError(t, err)
	_, err = svc.Register(ctx, other.ID, date, 9*time.Hour, 10*time.Hour, 50)
	require.NoError(t, err)

	price := 50.0
	got, meta, err := svc.ListFiltered(ctx, AvailabilityFilter{PhysicianID: &phys.ID, Price: &price})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 9*time.Hour, got[0].StartTime)
	require.Equal(t, 1, meta.TotalCount)

	after := 13 * time.Hour
	got, _, err = svc.ListFiltered(ctx, AvailabilityFilter{StartAfter: &after})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 75.0, got[0].Price)

	before := 10 * time.Hour
	got, _, err = svc.ListFiltered(ctx, AvailabilityFilter{EndBefore: &before})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestListByPhysicianIncludesOccupied(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestAvailability(store)

	phys := Physician{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test"}
	require.NoError(t, store.Physicians().Add(ctx, &phys))

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	a, err := svc.Register(ctx, phys.ID, date, 9*time.Hour, 10*time.Hour, 50)
	require.NoError(t, err)
	_, err = svc.Register(ctx, phys.ID, date, 11*time.Hour, 12*time.Hour, 50)
	require.NoError(t, err)

	a.Status = AvailabilityOccupied
	require.NoError(t, store.Availabilities().Update(ctx, a))

	got, err := svc.ListByPhysician(ctx, phys.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
