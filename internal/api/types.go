package api

import (
	"time"

	"github.com/clinicdesk/booking/internal/auth"
	"github.com/clinicdesk/booking/internal/clinic"
)

// Requests. Field-shape rules run through the validator before any service is
// invoked; services only see business rules.

type RegisterAvailabilityRequest struct {
	PhysicianID int64   `json:"physician_id" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type ReserveAppointmentRequest struct {
	PatientEmail   string `json:"patient_email" validate:"required,email"`
	AvailabilityID int64  `json:"availability_id" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"required,max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type RegisterPhysicianRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Specialty string `json:"specialty" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=30"`
}

type RegisterPatientRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Surname string `json:"surname" validate:"required,max=100"`
	Age     int    `json:"age" validate:"gte=0,lte=150"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Address string `json:"address" validate:"required,max=200"`
}

type RegisterUserRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=administrator physician patient"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Responses

type AvailabilityResponse struct {
	ID          int64   `json:"id"`
	PhysicianID int64   `json:"physician_id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

type PaymentResponse struct {
	ID            int64      `json:"id"`
	AppointmentID int64      `json:"appointment_id"`
	Amount        float64    `json:"amount"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Status        string     `json:"status"`
}

type AppointmentResponse struct {
	ID             int64            `json:"id"`
	PatientID      int64            `json:"patient_id"`
	PhysicianID    int64            `json:"physician_id"`
	AvailabilityID int64            `json:"availability_id"`
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	Reason         string           `json:"reason"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	Payment        *PaymentResponse `json:"payment,omitempty"`
}

type PhysicianResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type PatientResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Age     int     `json:"age"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AppointmentCountResponse struct {
	PhysicianID int64  `json:"physician_id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Count       int    `json:"appointment_count"`
}

const dateLayout = "2006-01-02"

func toAvailabilityResponse(a *clinic.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:          a.ID,
		PhysicianID: a.PhysicianID,
		Date:        a.Date.Format(dateLayout),
		StartTime:   clinic.FormatClock(a.StartTime),
		EndTime:     clinic.FormatClock(a.EndTime),
		Price:       a.Price,
		Status:      string(a.Status),
	}
}

func toPaymentResponse(p *clinic.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		Amount:        p.Amount,
		Status:        string(p.Status),
	}
	if !p.PaidAt.IsZero() {
		paidAt := p.PaidAt
		resp.PaidAt = &paidAt
	}
	return resp
}

func toAppointmentResponse(a *clinic.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		PhysicianID:    a.PhysicianID,
		AvailabilityID: a.AvailabilityID,
		Date:           a.Date.Format(dateLayout),
		Time:           clinic.FormatClock(a.Time),
		Reason:         a.Reason,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
	if a.Payment != nil {
		pay := toPaymentResponse(a.Payment)
		resp.Payment = &pay
	}
	return resp
}

func toPhysicianResponse(p *clinic.Physician) PhysicianResponse {
	return PhysicianResponse{
		ID:        p.ID,
		Name:      p.Name,
		Specialty: p.Specialty,
		Email:     p.Email,
		Phone:     p.Phone,
	}
}

func toPatientResponse(p *clinic.Patient) PatientResponse {
	return PatientResponse{
		ID:      p.ID,
		Name:    p.Name,
		Surname: p.Surname,
		Age:     p.Age,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
		Balance: p.Balance,
	}
}

func toUserResponse(u *auth.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Login: u.Login,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}
