package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/booking/internal/clinic"
)

const (
	MessageSuccess     = "success"
	MessageInformation = "information"
	MessageWarning     = "warning"
	MessageError       = "error"
)

type Message struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Envelope is the payload shape every endpoint returns.
type Envelope struct {
	Data       any          `json:"data,omitempty"`
	Pagination *clinic.Page `json:"pagination,omitempty"`
	Messages   []Message    `json:"messages"`
}

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any, msgs ...Message) {
	writeJSON(w, status, Envelope{Data: data, Messages: msgs})
}

func writePaged(w http.ResponseWriter, data any, page clinic.Page, msgs ...Message) {
	writeJSON(w, http.StatusOK, Envelope{Data: data, Pagination: &page, Messages: msgs})
}

func writeError(w http.ResponseWriter, status int, description string) {
	writeJSON(w, status, Envelope{Messages: []Message{{Type: MessageError, Description: description}}})
}

func infoMsg(description string) Message {
	return Message{Type: MessageInformation, Description: description}
}

func warnMsg(description string) Message {
	return Message{Type: MessageWarning, Description: description}
}

func successMsg(description string) Message {
	return Message{Type: MessageSuccess, Description: description}
}

// decodeValid decodes the JSON body into dst and runs the declarative field
// rules. A non-nil return has already been written to the response.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]Message, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, Message{
					Type:        MessageError,
					Description: fmt.Sprintf("field %s failed validation rule %q", fe.Field(), fe.Tag()),
				})
			}
			writeJSON(w, http.StatusBadRequest, Envelope{Messages: msgs})
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

// writeDomainError maps business-rule sentinels to their suggested status.
// Anything unrecognized is an infrastructure failure and surfaces as a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrPhysicianNotFound),
		errors.Is(err, clinic.ErrPatientNotFound),
		errors.Is(err, clinic.ErrAvailabilityNotFound),
		errors.Is(err, clinic.ErrAppointmentNotFound),
		errors.Is(err, clinic.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, clinic.ErrDailyCapReached),
		errors.Is(err, clinic.ErrAvailabilityOverlap),
		errors.Is(err, clinic.ErrAvailabilityOccupied),
		errors.Is(err, clinic.ErrPhysicianBooked),
		errors.Is(err, clinic.ErrAlreadyCancelled),
		errors.Is(err, clinic.ErrCancelCompleted),
		errors.Is(err, clinic.ErrCancelTooLate),
		errors.Is(err, clinic.ErrNotBooked),
		errors.Is(err, clinic.ErrPaymentNotPending):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, clinic.ErrSlotContended):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
