// Package handler exposes the admin endpoints. Routes require a bearer token
// and an admin account; non-admins get 403.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"unibook/backend/internal/authz"
	bookservice "unibook/backend/internal/book/service"
	identityservice "unibook/backend/internal/identity/service"
	"unibook/backend/internal/server/middleware"
	"unibook/backend/internal/server/respond"
)

type Handler struct {
	identity *identityservice.Service
	books    *bookservice.Service
	log      *zap.Logger
}

func NewHandler(identity *identityservice.Service, books *bookservice.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{identity: identity, books: books, log: log}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	if err := authz.RequireAdmin(actor); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	skip, limit := pageParams(r)
	users, err := h.identity.ListUsers(r.Context(), skip, limit)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	if err := authz.RequireAdmin(actor); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.identity.DeleteUser(r.Context(), actor, id); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	if err := authz.RequireAdmin(actor); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	skip, limit := pageParams(r)
	books, err := h.books.ListAllWithOwners(r.Context(), skip, limit)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, books)
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())
	if err := authz.RequireAdmin(actor); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.books.Delete(r.Context(), actor, id); err != nil {
		respond.Error(w, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// pageParams reads skip and limit, tolerating absent or malformed values.
// The services clamp the final range.
func pageParams(r *http.Request) (skip, limit int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil {
		skip = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}
	return skip, limit
}
