package clinic

import (
	"fmt"
	"time"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityOccupied  AvailabilityStatus = "occupied"
)

type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "booked"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Physician struct {
	ID        int64
	Name      string
	Specialty string
	Email     string
	Phone     string
}

type Patient struct {
	ID      int64
	Name    string
	Surname string
	Age     int
	Email   string
	Phone   string
	Address string
	Balance float64
}

// Availability is a physician-declared window of bookable time. StartTime and
// EndTime are offsets from midnight of Date.
type Availability struct {
	ID          int64
	PhysicianID int64
	Date        time.Time
	StartTime   time.Duration
	EndTime     time.Duration
	Price       float64
	Status      AvailabilityStatus
}

// Appointment consumes exactly one availability slot. Date and Time are copied
// from the slot at booking time.
type Appointment struct {
	ID             int64
	PatientID      int64
	PhysicianID    int64
	AvailabilityID int64
	Date           time.Time
	Time           time.Duration
	Reason         string
	Status         AppointmentStatus
	CreatedAt      time.Time
	Payment        *Payment
}

// Payment is the financial record 1:1 with an appointment.
type Payment struct {
	ID            int64
	AppointmentID int64
	Amount        float64
	PaidAt        time.Time
	Status        PaymentStatus
}

// PhysicianAppointmentCount is the per-physician appointment tally report.
type PhysicianAppointmentCount struct {
	PhysicianID int64
	Name        string
	Specialty   string
	Count       int
}

// slotStart anchors a stored calendar date and clock offset in loc. Dates come
// back from Postgres at UTC midnight, so the wall-clock moment must be rebuilt
// in the caller's zone before comparing against a clock reading.
func slotStart(date time.Time, clock time.Duration, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(clock)
}

// sameDay reports whether two instants fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseClock parses a "HH:MM" or "HH:MM:SS" wall-clock string into an offset
// from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// FormatClock renders an offset from midnight as "HH:MM".
func FormatClock(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
