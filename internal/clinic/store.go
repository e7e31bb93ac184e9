package clinic

import (
	"context"
	"errors"
)

var (
	ErrPhysicianNotFound    = errors.New("physician not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrPaymentNotFound      = errors.New("payment not found")
)

type PhysicianRepo interface {
	GetAll(ctx context.Context) ([]Physician, error)
	GetByID(ctx context.Context, id int64) (*Physician, error)
	Add(ctx context.Context, p *Physician) error
	Update(ctx context.Context, p *Physician) error
	Delete(ctx context.Context, id int64) error
}

type PatientRepo interface {
	GetAll(ctx context.Context) ([]Patient, error)
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Add(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
}

type AvailabilityRepo interface {
	GetAll(ctx context.Context) ([]Availability, error)
	GetByID(ctx context.Context, id int64) (*Availability, error)
	Add(ctx context.Context, a *Availability) error
	Update(ctx context.Context, a *Availability) error
	Delete(ctx context.Context, id int64) error
}

type AppointmentRepo interface {
	GetAll(ctx context.Context) ([]Appointment, error)
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Add(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id int64) error

	// CountByPhysician is the per-physician appointment tally report.
	CountByPhysician(ctx context.Context) ([]PhysicianAppointmentCount, error)
}

type PaymentRepo interface {
	GetAll(ctx context.Context) ([]Payment, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Add(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id int64) error
}

// Store is the unit of work: one accessor per entity plus a transaction
// boundary spanning all of them. WithTx hands the closure a Store scoped to
// the transaction; the transaction commits when the closure returns nil and
// rolls back otherwise, surfacing the closure's original error.
type Store interface {
	Physicians() PhysicianRepo
	Patients() PatientRepo
	Availabilities() AvailabilityRepo
	Appointments() AppointmentRepo
	Payments() PaymentRepo

	WithTx(ctx context.Context, fn func(tx Store) error) error
}
