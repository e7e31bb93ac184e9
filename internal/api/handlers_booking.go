package api

import (
	"net/http"

	"github.com/clinicdesk/booking/internal/clinic"
)

func reserveAppointmentHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReserveAppointmentRequest
		if !decodeValid(w, r, &req) {
			return
		}

		appt, err := svc.Reserve(r.Context(), req.PatientEmail, req.AvailabilityID, req.Reason)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusCreated, toAppointmentResponse(appt), successMsg("appointment reserved"))
	}
}

func cancelAppointmentHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// The body is optional; an absent body means no cancellation reason.
		var req CancelAppointmentRequest
		if r.Body != nil && r.ContentLength != 0 {
			if !decodeValid(w, r, &req) {
				return
			}
		}

		appt, err := svc.Cancel(r.Context(), id, req.Reason)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusOK, toAppointmentResponse(appt), successMsg("appointment cancelled"))
	}
}

func completeAppointmentHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		appt, err := svc.Complete(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusOK, toAppointmentResponse(appt), successMsg("appointment completed"))
	}
}

func payAppointmentHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		payment, err := svc.MarkPaid(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusOK, toPaymentResponse(payment), successMsg("payment recorded"))
	}
}

func getAppointmentHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		appt, err := svc.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusOK, toAppointmentResponse(appt), infoMsg("appointment retrieved"))
	}
}

func deleteAppointmentHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusOK, nil, successMsg("appointment deleted"))
	}
}

func listAppointmentsHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := clinic.AppointmentFilter{
			Status: r.URL.Query().Get("status"),
		}

		var err error
		if filter.Page, err = queryInt(r, "page", clinic.DefaultPage); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.PageSize, err = queryInt(r, "page_size", clinic.DefaultPageSize); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.PatientID, err = queryInt64Ptr(r, "patient_id"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.PhysicianID, err = queryInt64Ptr(r, "physician_id"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.Date, err = queryDatePtr(r, "date"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		appts, page, err := svc.Query(r.Context(), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, toAppointmentResponse(&appts[i]))
		}

		if len(resp) == 0 {
			writePaged(w, resp, page, warnMsg("no appointments found for the given filters"))
			return
		}
		writePaged(w, resp, page, infoMsg("appointments retrieved"))
	}
}

func appointmentCountsHandler(svc *clinic.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := svc.CountByPhysician(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AppointmentCountResponse, 0, len(counts))
		for _, c := range counts {
			resp = append(resp, AppointmentCountResponse{
				PhysicianID: c.PhysicianID,
				Name:        c.Name,
				Specialty:   c.Specialty,
				Count:       c.Count,
			})
		}
		writeData(w, http.StatusOK, resp, infoMsg("appointment counts retrieved"))
	}
}
