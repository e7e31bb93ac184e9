package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/booking/internal/auth"
	"github.com/clinicdesk/booking/internal/clinic"
	"github.com/clinicdesk/booking/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn, 4)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	seedCtx := context.Background()
	physicianIDs, err := seedPhysicians(seedCtx, pool, 25)
	if err != nil {
		log.Fatalf("seed physicians: %v", err)
	}
	if err := seedPatients(seedCtx, pool, 500); err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedAvailabilities(seedCtx, pool, physicianIDs); err != nil {
		log.Fatalf("seed availabilities: %v", err)
	}
	if err := seedAdminUser(seedCtx, pool); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	log.Println("seed complete")
}

func seedPhysicians(ctx context.Context, pool *pgxpool.Pool, count int) ([]int64, error) {
	log.Printf("seeding %d physicians", count)

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	store := clinic.NewPgStore(pool)
	ids := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		p := &clinic.Physician{
			Name:      "Dr. " + gofakeit.Name(),
			Specialty: specialties[i%len(specialties)],
			Email:     fmt.Sprintf("physician%d@%s", i, gofakeit.DomainName()),
			Phone:     gofakeit.Phone(),
		}
		if err := store.Physicians().Add(ctx, p); err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	store := clinic.NewPgStore(pool)
	for i := 0; i < count; i++ {
		p := &clinic.Patient{
			Name:    gofakeit.FirstName(),
			Surname: gofakeit.LastName(),
			Age:     gofakeit.Number(18, 90),
			Email:   fmt.Sprintf("patient%d@%s", i, gofakeit.DomainName()),
			Phone:   gofakeit.Phone(),
			Address: gofakeit.Street(),
		}
		if err := store.Patients().Add(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// seedAvailabilities declares up to three non-overlapping morning slots per
// physician for each of the next seven days.
func seedAvailabilities(ctx context.Context, pool *pgxpool.Pool, physicianIDs []int64) error {
	log.Printf("seeding availabilities for %d physicians", len(physicianIDs))

	store := clinic.NewPgStore(pool)
	today := time.Now().Truncate(24 * time.Hour)

	for _, physicianID := range physicianIDs {
		for day := 1; day <= 7; day++ {
			date := today.AddDate(0, 0, day)
			slots := gofakeit.Number(1, 3)
			for slot := 0; slot < slots; slot++ {
				start := time.Duration(9+slot) * time.Hour
				a := &clinic.Availability{
					PhysicianID: physicianID,
					Date:        date,
					StartTime:   start,
					EndTime:     start + time.Hour,
					Price:       float64(gofakeit.Number(30, 120)),
					Status:      clinic.AvailabilityAvailable,
				}
				if err := store.Availabilities().Add(ctx, a); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, pool *pgxpool.Pool) error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-admin"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	store := auth.NewPgStore(pool)
	return store.Add(ctx, &auth.User{
		Login:    "admin",
		Password: hash,
		Name:     "Administrator",
		Role:     auth.RoleAdministrator,
	})
}
