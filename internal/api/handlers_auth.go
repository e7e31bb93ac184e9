package api

import (
	"net/http"

	"github.com/clinicdesk/booking/internal/auth"
)

func loginHandler(svc *auth.Service, tokens *auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeValid(w, r, &req) {
			return
		}

		user, err := svc.VerifyCredentials(r.Context(), req.Login, req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := tokens.Issue(user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeData(w, http.StatusOK, TokenResponse{Token: token}, successMsg("authenticated"))
	}
}

func registerUserHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if !decodeValid(w, r, &req) {
			return
		}

		user, err := svc.RegisterUser(r.Context(), &auth.User{
			Login:    req.Login,
			Password: req.Password,
			Name:     req.Name,
			Role:     auth.Role(req.Role),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if user == nil {
			writeData(w, http.StatusConflict, nil, warnMsg("a user with this login already exists"))
			return
		}

		writeData(w, http.StatusCreated, toUserResponse(user), successMsg("user registered"))
	}
}

func listUsersHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}
		writeData(w, http.StatusOK, resp, infoMsg("users retrieved"))
	}
}
