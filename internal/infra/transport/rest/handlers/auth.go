package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type loginResponse struct {
	AuthURL string `json:"authUrl"`
}

type callbackResponse struct {
	Token string             `json:"token"`
	User  entity.SessionUser `json:"user"`
}

type meResponse struct {
	User entity.SessionUser `json:"user"`
}

// GET /api/auth-login
func (h *Handlers) AuthLogin(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.LoginURL(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "OAuth is not configured")
		return
	}
	WriteJSON(w, http.StatusOK, loginResponse{AuthURL: url})
}

// GET /api/auth-callback?code=
func (h *Handlers) AuthCallback(w http.ResponseWriter, r *http.Request) {
	code, err := queryString(r, "code")
	if err != nil {
		badQuery(w, err)
		return
	}
	if code == "" {
		WriteError(w, http.StatusBadRequest, ErrorResponse{Error: "code is required"})
		return
	}

	token, user, err := h.service.CompleteLogin(r.Context(), code)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to complete login")
		return
	}
	WriteJSON(w, http.StatusOK, callbackResponse{Token: token, User: user})
}

// GET /api/auth-me
func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	WriteJSON(w, http.StatusOK, meResponse{User: user})
}
