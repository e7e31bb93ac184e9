package clinic

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRegisterPhysicianDuplicateEmailIsNilNotError(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewDirectoryService(store, zerolog.Nop())

	first, err := svc.RegisterPhysician(ctx, &Physician{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test"})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotZero(t, first.ID)

	dup, err := svc.RegisterPhysician(ctx, &Physician{Name: "Dr. Ana Imposter", Specialty: "Neurology", Email: "ana@clinic.test"})
	require.NoError(t, err)
	require.Nil(t, dup)

	all, err := svc.ListPhysicians(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestRegisterPatientOpensZeroBalance(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewDirectoryService(store, zerolog.Nop())

	p, err := svc.RegisterPatient(ctx, &Patient{Name: "Luis", Surname: "Mora", Age: 41, Email: "luis@mail.test", Balance: 500})
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Zero(t, p.Balance)

	dup, err := svc.RegisterPatient(ctx, &Patient{Name: "Luisa", Surname: "Mora", Email: "luis@mail.test"})
	require.NoError(t, err)
	require.Nil(t, dup)
}

func TestSearchPhysiciansSubstringMatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewDirectoryService(store, zerolog.Nop())

	seed := []Physician{
		{Name: "Dr. Ana Ruiz", Specialty: "Cardiology", Email: "ana@clinic.test", Phone: "555-0100"},
		{Name: "Dr. Iker Soto", Specialty: "Dermatology", Email: "iker@clinic.test", Phone: "555-0101"},
		{Name: "Dr. Eva Cardoso", Specialty: "Pediatrics", Email: "eva@clinic.test", Phone: "555-0102"},
	}
	for i := range seed {
		_, err := svc.RegisterPhysician(ctx, &seed[i])
		require.NoError(t, err)
	}

	got, _, err := svc.SearchPhysicians(ctx, PhysicianFilter{Specialty: "cardio"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Dr. Ana Ruiz", got[0].Name)

	got, _, err = svc.SearchPhysicians(ctx, PhysicianFilter{Name: "SOTO"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	// Phone matches exactly, combined conjunctively with name.
	got, _, err = svc.SearchPhysicians(ctx, PhysicianFilter{Name: "Dr.", Phone: "555-0102"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Dr. Eva Cardoso", got[0].Name)

	got, meta, err := svc.SearchPhysicians(ctx, PhysicianFilter{Specialty: "oncology"})
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, meta.TotalCount)
}
