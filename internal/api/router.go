package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/booking/internal/auth"
	"github.com/clinicdesk/booking/internal/clinic"
)

type RouterConfig struct {
	Availability *clinic.AvailabilityService
	Booking      *clinic.BookingService
	Directory    *clinic.DirectoryService
	Auth         *auth.Service
	Tokens       *auth.TokenIssuer
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	Logger       zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Auth endpoints
	r.Post("/auth/login", loginHandler(cfg.Auth, cfg.Tokens))
	r.Post("/auth/register", registerUserHandler(cfg.Auth))

	// Everything else requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(cfg.Tokens))

		r.Get("/auth/users", listUsersHandler(cfg.Auth))

		r.Post("/physicians", registerPhysicianHandler(cfg.Directory))
		r.Get("/physicians", listPhysiciansHandler(cfg.Directory))
		r.Get("/physicians/search", searchPhysiciansHandler(cfg.Directory))
		r.Get("/physicians/appointment-counts", appointmentCountsHandler(cfg.Booking))
		r.Get("/physicians/{id}/availabilities", listPhysicianAvailabilitiesHandler(cfg.Availability))

		r.Post("/patients", registerPatientHandler(cfg.Directory))
		r.Get("/patients", listPatientsHandler(cfg.Directory))

		r.Post("/availabilities", registerAvailabilityHandler(cfg.Availability))
		r.Get("/availabilities", listAvailabilitiesHandler(cfg.Availability))

		r.Post("/appointments", reserveAppointmentHandler(cfg.Booking))
		r.Get("/appointments", listAppointmentsHandler(cfg.Booking))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Booking))
		r.Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Booking))
		r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Booking))
		r.Post("/appointments/{id}/complete", completeAppointmentHandler(cfg.Booking))
		r.Post("/appointments/{id}/pay", payAppointmentHandler(cfg.Booking))
	})

	return r
}
