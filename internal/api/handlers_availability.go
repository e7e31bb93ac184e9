package api

import (
	"net/http"
	"time"

	"github.com/clinicdesk/booking/internal/clinic"
)

func registerAvailabilityHandler(svc *clinic.AvailabilityService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterAvailabilityRequest
		if !decodeValid(w, r, &req) {
			return
		}

		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		start, err := clinic.ParseClock(req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_time must be in HH:MM format")
			return
		}
		end, err := clinic.ParseClock(req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "end_time must be in HH:MM format")
			return
		}
		if end <= start {
			writeError(w, http.StatusBadRequest, "end_time must be after start_time")
			return
		}

		avail, err := svc.Register(r.Context(), req.PhysicianID, date, start, end, req.Price)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeData(w, http.StatusCreated, toAvailabilityResponse(avail), successMsg("availability registered"))
	}
}

func listPhysicianAvailabilitiesHandler(svc *clinic.AvailabilityService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		physicianID, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		avails, err := svc.ListByPhysician(r.Context(), physicianID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AvailabilityResponse, 0, len(avails))
		for i := range avails {
			resp = append(resp, toAvailabilityResponse(&avails[i]))
		}
		writeData(w, http.StatusOK, resp, infoMsg("availabilities retrieved"))
	}
}

func listAvailabilitiesHandler(svc *clinic.AvailabilityService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter clinic.AvailabilityFilter

		var err error
		if filter.Page, err = queryInt(r, "page", clinic.DefaultPage); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.PageSize, err = queryInt(r, "page_size", clinic.DefaultPageSize); err != nil {
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
		if filter.StartAfter, err = queryClockPtr(r, "start_time"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.EndBefore, err = queryClockPtr(r, "end_time"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if filter.Price, err = queryFloatPtr(r, "price"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		avails, page, err := svc.ListFiltered(r.Context(), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AvailabilityResponse, 0, len(avails))
		for i := range avails {
			resp = append(resp, toAvailabilityResponse(&avails[i]))
		}

		if len(resp) == 0 {
			writePaged(w, resp, page, warnMsg("no availabilities found for the given filters"))
			return
		}
		writePaged(w, resp, page, infoMsg("availabilities retrieved"))
	}
}
