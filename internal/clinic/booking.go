package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	redisclient "github.com/clinicdesk/booking/internal/redis"
)

var (
	ErrAvailabilityOccupied = errors.New("availability is already occupied")
	ErrPhysicianBooked      = errors.New("physician already has an appointment in that slot")
	ErrSlotContended        = errors.New("slot is currently being booked, please retry")
	ErrAlreadyCancelled     = errors.New("appointment is already cancelled")
	ErrCancelCompleted      = errors.New("cannot cancel a completed appointment")
	ErrCancelTooLate        = errors.New("appointments must be cancelled at least 24 hours in advance")
	ErrNotBooked            = errors.New("only booked appointments can be completed")
	ErrPaymentNotPending    = errors.New("payment is not pending")
)

// BookingService orchestrates the reservation and cancellation workflow over
// availability slots, appointments and payments.
type BookingService struct {
	store        Store
	locker       redisclient.Locker
	cancelNotice time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

func NewBookingService(store Store, locker redisclient.Locker, cancelNotice time.Duration, log zerolog.Logger) *BookingService {
	return &BookingService{
		store:        store,
		locker:       locker,
		cancelNotice: cancelNotice,
		log:          log,
		now:          time.Now,
	}
}

// Reserve books an availability slot for the patient identified by email. The
// whole sequence runs under a per-slot Redis lock so two concurrent requests
// for the same slot cannot both pass the status check; writes land in one
// transaction.
func (s *BookingService) Reserve(ctx context.Context, patientEmail string, availabilityID int64, reason string) (*Appointment, error) {
	var created *Appointment

	err := s.locker.WithSlotLock(ctx, availabilityID, func(lockCtx context.Context) error {
		avail, err := s.store.Availabilities().GetByID(lockCtx, availabilityID)
		if err != nil {
			return err
		}
		if avail.Status != AvailabilityAvailable {
			return ErrAvailabilityOccupied
		}

		patients, err := s.store.Patients().GetAll(lockCtx)
		if err != nil {
			return fmt.Errorf("load patients: %w", err)
		}
		var patient *Patient
		for i := range patients {
			if strings.EqualFold(patients[i].Email, patientEmail) {
				patient = &patients[i]
				break
			}
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		physician, err := s.store.Physicians().GetByID(lockCtx, avail.PhysicianID)
		if err != nil {
			return err
		}

		// Double-booking guard independent of slot status: a stale or
		// duplicate slot must not let the physician be booked twice for the
		// same date and start time.
		appts, err := s.store.Appointments().GetAll(lockCtx)
		if err != nil {
			return fmt.Errorf("load appointments: %w", err)
		}
		for _, a := range appts {
			if a.Status == AppointmentCancelled {
				continue
			}
			if a.PhysicianID == physician.ID && sameDay(a.Date, avail.Date) && a.Time == avail.StartTime {
				return ErrPhysicianBooked
			}
		}

		appt := &Appointment{
			PatientID:      patient.ID,
			PhysicianID:    physician.ID,
			AvailabilityID: avail.ID,
			Date:           avail.Date,
			Time:           avail.StartTime,
			Reason:         reason,
			Status:         AppointmentBooked,
			CreatedAt:      s.now(),
			Payment: &Payment{
				Amount: avail.Price,
				Status: PaymentPending,
			},
		}

		avail.Status = AvailabilityOccupied

		err = s.store.WithTx(lockCtx, func(tx Store) error {
			if err := tx.Appointments().Add(lockCtx, appt); err != nil {
				return err
			}
			if err := tx.Availabilities().Update(lockCtx, avail); err != nil {
				return fmt.Errorf("update availability: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		created = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotContended
		}
		return nil, err
	}

	s.log.Info().
		Int64("appointment_id", created.ID).
		Int64("availability_id", availabilityID).
		Msg("appointment reserved")

	return created, nil
}

// Cancel moves a booked appointment to cancelled, frees its slot and settles
// the payment: pending payments are cancelled, paid ones are refunded to the
// patient's balance. The notice check uses a single clock reading and happens
// before any state changes.
func (s *BookingService) Cancel(ctx context.Context, appointmentID int64, reason string) (*Appointment, error) {
	appt, err := s.store.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appt.Status == AppointmentCancelled {
		return nil, ErrAlreadyCancelled
	}
	if appt.Status == AppointmentCompleted {
		return nil, ErrCancelCompleted
	}

	now := s.now()
	deadline := slotStart(appt.Date, appt.Time, now.Location())
	if deadline.Sub(now) <= s.cancelNotice {
		return nil, ErrCancelTooLate
	}

	avail, err := s.store.Availabilities().GetByID(ctx, appt.AvailabilityID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.Payments().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	var payment *Payment
	for i := range payments {
		if payments[i].AppointmentID == appt.ID {
			payment = &payments[i]
			break
		}
	}

	appt.Status = AppointmentCancelled
	if reason != "" {
		appt.Reason = fmt.Sprintf("%s (cancelled: %s)", appt.Reason, reason)
	}
	avail.Status = AvailabilityAvailable

	err = s.store.WithTx(ctx, func(tx Store) error {
		if payment != nil && payment.Status == PaymentPending {
			payment.Status = PaymentCancelled
			if err := tx.Payments().Update(ctx, payment); err != nil {
				return fmt.Errorf("update payment: %w", err)
			}
		} else if payment != nil && payment.Status == PaymentPaid {
			patient, err := tx.Patients().GetByID(ctx, appt.PatientID)
			if err != nil {
				return err
			}
			patient.Balance += payment.Amount
			payment.Status = PaymentRefunded
			if err := tx.Patients().Update(ctx, patient); err != nil {
				return fmt.Errorf("update patient: %w", err)
			}
			if err := tx.Payments().Update(ctx, payment); err != nil {
				return fmt.Errorf("update payment: %w", err)
			}
		}

		if err := tx.Appointments().Update(ctx, appt); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		if err := tx.Availabilities().Update(ctx, avail); err != nil {
			return fmt.Errorf("update availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	appt.Payment = payment

	s.log.Info().
		Int64("appointment_id", appt.ID).
		Int64("availability_id", avail.ID).
		Msg("appointment cancelled")

	return appt, nil
}

// Complete marks a booked appointment as completed.
func (s *BookingService) Complete(ctx context.Context, appointmentID int64) (*Appointment, error) {
	appt, err := s.store.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != AppointmentBooked {
		return nil, ErrNotBooked
	}

	appt.Status = AppointmentCompleted
	if err := s.store.Appointments().Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appt, nil
}

// CompleteElapsed marks booked appointments whose scheduled time has passed as
// completed. Intended for the completion worker. Returns how many were
// updated.
func (s *BookingService) CompleteElapsed(ctx context.Context) (int, error) {
	appts, err := s.store.Appointments().GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load appointments: %w", err)
	}

	now := s.now()
	completed := 0
	for i := range appts {
		a := &appts[i]
		if a.Status != AppointmentBooked || !slotStart(a.Date, a.Time, now.Location()).Before(now) {
			continue
		}
		a.Status = AppointmentCompleted
		if err := s.store.Appointments().Update(ctx, a); err != nil {
			s.log.Error().Err(err).Int64("appointment_id", a.ID).Msg("failed to complete elapsed appointment")
			continue
		}
		completed++
	}
	return completed, nil
}

// MarkPaid settles the appointment's pending payment.
func (s *BookingService) MarkPaid(ctx context.Context, appointmentID int64) (*Payment, error) {
	if _, err := s.store.Appointments().GetByID(ctx, appointmentID); err != nil {
		return nil, err
	}

	payments, err := s.store.Payments().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	var payment *Payment
	for i := range payments {
		if payments[i].AppointmentID == appointmentID {
			payment = &payments[i]
			break
		}
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != PaymentPending {
		return nil, ErrPaymentNotPending
	}

	payment.Status = PaymentPaid
	payment.PaidAt = s.now()
	if err := s.store.Payments().Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return payment, nil
}

// Get retrieves a single appointment.
func (s *BookingService) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.store.Appointments().GetByID(ctx, id)
}

// Delete is the administrative hard delete.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.Appointments().GetByID(ctx, id); err != nil {
		return err
	}
	return s.store.Appointments().Delete(ctx, id)
}

// AppointmentFilter narrows Query; each present field applies conjunctively.
type AppointmentFilter struct {
	PatientID   *int64
	PhysicianID *int64
	Status      string // case-insensitive exact match
	Date        *time.Time
	Page        int
	PageSize    int
}

func (s *BookingService) Query(ctx context.Context, f AppointmentFilter) ([]Appointment, Page, error) {
	all, err := s.store.Appointments().GetAll(ctx)
	if err != nil {
		return nil, Page{}, fmt.Errorf("load appointments: %w", err)
	}

	var filtered []Appointment
	for _, a := range all {
		if f.PatientID != nil && a.PatientID != *f.PatientID {
			continue
		}
		if f.PhysicianID != nil && a.PhysicianID != *f.PhysicianID {
			continue
		}
		if f.Status != "" && !strings.EqualFold(string(a.Status), f.Status) {
			continue
		}
		if f.Date != nil && !sameDay(a.Date, *f.Date) {
			continue
		}
		filtered = append(filtered, a)
	}

	paged, meta := Paginate(filtered, f.Page, f.PageSize)
	return paged, meta, nil
}

// CountByPhysician exposes the per-physician appointment tally report.
func (s *BookingService) CountByPhysician(ctx context.Context) ([]PhysicianAppointmentCount, error) {
	return s.store.Appointments().CountByPhysician(ctx)
}
