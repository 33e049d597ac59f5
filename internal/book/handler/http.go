// Package handler exposes the book endpoints. All routes require a bearer token.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"unibook/backend/internal/book/domain"
	"unibook/backend/internal/book/service"
	"unibook/backend/internal/server/middleware"
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	var in domain.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.svc.Create(r.Context(), actor, &in)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	books, err := h.svc.ListMine(r.Context(), actor)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, books)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	id := mux.Vars(r)["id"]
	b, err := h.svc.Get(r.Context(), actor, id)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	id := mux.Vars(r)["id"]
	var patch domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Detail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.svc.Update(r.Context(), actor, id, &patch)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	id := mux.Vars(r)["id"]
	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}
