package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// method runs the same against the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgStore struct {
	pool *pgxpool.Pool // nil when the store is scoped to a transaction
	q    querier
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, q: pool}
}

func (s *PgStore) Physicians() PhysicianRepo { return &pgPhysicians{q: s.q} }

func (s *PgStore) Patients() PatientRepo { return &pgPatients{q: s.q} }

func (s *PgStore) Availabilities() AvailabilityRepo { return &pgAvailabilities{q: s.q} }

func (s *PgStore) Appointments() AppointmentRepo { return &pgAppointments{q: s.q} }

func (s *PgStore) Payments() PaymentRepo { return &pgPayments{q: s.q} }

// WithTx runs fn against a transaction-scoped store. Nested calls reuse the
// enclosing transaction.
func (s *PgStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&PgStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Helpers

func clockToPg(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: int64(d / time.Microsecond), Valid: true}
}

func clockFromPg(t pgtype.Time) time.Duration {
	return time.Duration(t.Microseconds) * time.Microsecond
}

func scanPhysician(row pgx.Row) (*Physician, error) {
	var p Physician
	err := row.Scan(&p.ID, &p.Name, &p.Specialty, &p.Email, &p.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhysicianNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Surname, &p.Age, &p.Email, &p.Phone, &p.Address, &p.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanAvailability(row pgx.Row) (*Availability, error) {
	var a Availability
	var start, end pgtype.Time

	err := row.Scan(&a.ID, &a.PhysicianID, &a.Date, &start, &end, &a.Price, &a.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}

	a.StartTime = clockFromPg(start)
	a.EndTime = clockFromPg(end)
	return &a, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var start pgtype.Time

	err := row.Scan(&a.ID, &a.PatientID, &a.PhysicianID, &a.AvailabilityID, &a.Date, &start, &a.Reason, &a.Status, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Time = clockFromPg(start)
	return &a, nil
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	var paidAt *time.Time

	err := row.Scan(&p.ID, &p.AppointmentID, &p.Amount, &paidAt, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if paidAt != nil {
		p.PaidAt = *paidAt
	}
	return &p, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Physicians

type pgPhysicians struct {
	q querier
}

func (r *pgPhysicians) GetAll(ctx context.Context) ([]Physician, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, specialty, email, phone
		FROM physicians
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Physician
	for rows.Next() {
		p, err := scanPhysician(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *pgPhysicians) GetByID(ctx context.Context, id int64) (*Physician, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, name, specialty, email, phone
		FROM physicians
		WHERE id = $1
	`, id)
	return scanPhysician(row)
}

func (r *pgPhysicians) Add(ctx context.Context, p *Physician) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO physicians (name, specialty, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Name, p.Specialty, p.Email, p.Phone).Scan(&p.ID)
}

func (r *pgPhysicians) Update(ctx context.Context, p *Physician) error {
	_, err := r.q.Exec(ctx, `
		UPDATE physicians
		SET name = $2, specialty = $3, email = $4, phone = $5
		WHERE id = $1
	`, p.ID, p.Name, p.Specialty, p.Email, p.Phone)
	return err
}

func (r *pgPhysicians) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM physicians WHERE id = $1`, id)
	return err
}

// Patients

type pgPatients struct {
	q querier
}

func (r *pgPatients) GetAll(ctx context.Context) ([]Patient, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, surname, age, email, phone, address, balance
		FROM patients
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *pgPatients) GetByID(ctx context.Context, id int64) (*Patient, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, name, surname, age, email, phone, address, balance
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *pgPatients) Add(ctx context.Context, p *Patient) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO patients (name, surname, age, email, phone, address, balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Name, p.Surname, p.Age, p.Email, p.Phone, p.Address, p.Balance).Scan(&p.ID)
}

func (r *pgPatients) Update(ctx context.Context, p *Patient) error {
	_, err := r.q.Exec(ctx, `
		UPDATE patients
		SET name = $2, surname = $3, age = $4, email = $5, phone = $6, address = $7, balance = $8
		WHERE id = $1
	`, p.ID, p.Name, p.Surname, p.Age, p.Email, p.Phone, p.Address, p.Balance)
	return err
}

func (r *pgPatients) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

// Availabilities

type pgAvailabilities struct {
	q querier
}

func (r *pgAvailabilities) GetAll(ctx context.Context) ([]Availability, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, physician_id, date, start_time, end_time, price, status
		FROM availabilities
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *pgAvailabilities) GetByID(ctx context.Context, id int64) (*Availability, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, physician_id, date, start_time, end_time, price, status
		FROM availabilities
		WHERE id = $1
	`, id)
	return scanAvailability(row)
}

func (r *pgAvailabilities) Add(ctx context.Context, a *Availability) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO availabilities (physician_id, date, start_time, end_time, price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.PhysicianID, a.Date, clockToPg(a.StartTime), clockToPg(a.EndTime), a.Price, a.Status).Scan(&a.ID)
}

func (r *pgAvailabilities) Update(ctx context.Context, a *Availability) error {
	_, err := r.q.Exec(ctx, `
		UPDATE availabilities
		SET physician_id = $2, date = $3, start_time = $4, end_time = $5, price = $6, status = $7
		WHERE id = $1
	`, a.ID, a.PhysicianID, a.Date, clockToPg(a.StartTime), clockToPg(a.EndTime), a.Price, a.Status)
	return err
}

func (r *pgAvailabilities) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	return err
}

// Appointments

type pgAppointments struct {
	q querier
}

func (r *pgAppointments) GetAll(ctx context.Context) ([]Appointment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, patient_id, physician_id, availability_id, date, start_time, reason, status, created_at
		FROM appointments
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *pgAppointments) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, patient_id, physician_id, availability_id, date, start_time, reason, status, created_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

// Add inserts the appointment and, when one is attached, its payment. The
// caller is expected to run this inside WithTx.
func (r *pgAppointments) Add(ctx context.Context, a *Appointment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, physician_id, availability_id, date, start_time, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, a.PatientID, a.PhysicianID, a.AvailabilityID, a.Date, clockToPg(a.Time), a.Reason, a.Status, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	if a.Payment != nil {
		a.Payment.AppointmentID = a.ID
		pay := &pgPayments{q: r.q}
		if err := pay.Add(ctx, a.Payment); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
	}
	return nil
}

func (r *pgAppointments) Update(ctx context.Context, a *Appointment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE appointments
		SET date = $2, start_time = $3, reason = $4, status = $5
		WHERE id = $1
	`, a.ID, a.Date, clockToPg(a.Time), a.Reason, a.Status)
	return err
}

func (r *pgAppointments) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *pgAppointments) CountByPhysician(ctx context.Context) ([]PhysicianAppointmentCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.specialty, COUNT(a.id)
		FROM physicians p
		LEFT JOIN appointments a ON a.physician_id = p.id
		GROUP BY p.id, p.name, p.specialty
		ORDER BY p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PhysicianAppointmentCount
	for rows.Next() {
		var c PhysicianAppointmentCount
		if err := rows.Scan(&c.PhysicianID, &c.Name, &c.Specialty, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// Payments

type pgPayments struct {
	q querier
}

func (r *pgPayments) GetAll(ctx context.Context) ([]Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, appointment_id, amount, paid_at, status
		FROM payments
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *pgPayments) GetByID(ctx context.Context, id int64) (*Payment, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, appointment_id, amount, paid_at, status
		FROM payments
		WHERE id = $1
	`, id)
	return scanPayment(row)
}

func (r *pgPayments) Add(ctx context.Context, p *Payment) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO payments (appointment_id, amount, paid_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.AppointmentID, p.Amount, nullableTime(p.PaidAt), p.Status).Scan(&p.ID)
}

func (r *pgPayments) Update(ctx context.Context, p *Payment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE payments
		SET amount = $2, paid_at = $3, status = $4
		WHERE id = $1
	`, p.ID, p.Amount, nullableTime(p.PaidAt), p.Status)
	return err
}

func (r *pgPayments) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}
