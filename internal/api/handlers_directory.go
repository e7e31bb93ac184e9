package api

import (
	"net/http"

	"github.com/clinicdesk/booking/internal/clinic"
)

func registerPhysicianHandler(svc *clinic.DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPhysicianRequest
		if !decodeValid(w, r, &req) {
			return
		}

		physician, err := svc.RegisterPhysician(r.Context(), &clinic.Physician{
			Name:      req.Name,
			Specialty: req.Specialty,
			Email:     req.Email,
			Phone:     req.Phone,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if physician == nil {
			writeData(w, http.StatusConflict, nil, warnMsg("a physician with this email already exists"))
			return
		}

		writeData(w, http.StatusCreated, toPhysicianResponse(physician), successMsg("physician registered"))
	}
}

func listPhysiciansHandler(svc *clinic.DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		physicians, err := svc.ListPhysicians(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]PhysicianResponse, 0, len(physicians))
		for i := range physicians {
			resp = append(resp, toPhysicianResponse(&physicians[i]))
		}
		writeData(w, http.StatusOK, resp, infoMsg("physicians retrieved"))
	}
}

func searchPhysiciansHandler(svc *clinic.DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := clinic.PhysicianFilter{
			Name:      r.URL.Query().Get("name"),
			Specialty: r.URL.Query().Get("specialty"),
			Phone:     r.URL.Query().Get("phone"),
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
		if filter.ID, err = queryInt64Ptr(r, "physician_id"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		physicians, page, err := svc.SearchPhysicians(r.Context(), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]PhysicianResponse, 0, len(physicians))
		for i := range physicians {
			resp = append(resp, toPhysicianResponse(&physicians[i]))
		}

		if len(resp) == 0 {
			writePaged(w, resp, page, warnMsg("no physicians found for the given filters"))
			return
		}
		writePaged(w, resp, page, infoMsg("physicians retrieved"))
	}
}

func registerPatientHandler(svc *clinic.DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPatientRequest
		if !decodeValid(w, r, &req) {
			return
		}

		patient, err := svc.RegisterPatient(r.Context(), &clinic.Patient{
			Name:    req.Name,
			Surname: req.Surname,
			Age:     req.Age,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if patient == nil {
			writeData(w, http.StatusConflict, nil, warnMsg("a patient with this email already exists"))
			return
		}

		writeData(w, http.StatusCreated, toPatientResponse(patient), successMsg("patient registered"))
	}
}

func listPatientsHandler(svc *clinic.DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.ListPatients(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]PatientResponse, 0, len(patients))
		for i := range patients {
			resp = append(resp, toPatientResponse(&patients[i]))
		}
		writeData(w, http.StatusOK, resp, infoMsg("patients retrieved"))
	}
}
