// Package handler exposes the auth endpoints.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"unibook/backend/internal/identity/service"
	"unibook/backend/internal/server/respond"
)

type Handler struct {
	svc *service.Service
	log *zap.Logger
}

func NewHandler(svc *service.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Detail(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if _, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Verification code sent"})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.svc.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.svc.ResendCode(r.Context(), req.Email); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Verification code sent"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// DevCode serves pending verification codes in development. The route is only
// mounted when CODE_RETURN_TO_CLIENT is set, and never in production.
func (h *Handler) DevCode(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respond.Detail(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	code, ok := h.svc.DevCode(email)
	if !ok {
		respond.Detail(w, http.StatusNotFound, "No pending verification code")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"email": email, "code": code})
}
