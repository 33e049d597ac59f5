// Package respond writes JSON responses and maps service errors to HTTP
// statuses and client-facing detail strings.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"unibook/backend/internal/authz"
	bookservice "unibook/backend/internal/book/service"
	identityservice "unibook/backend/internal/identity/service"
)

// JSON writes v with the given status. Encoding failures are ignored; headers
// are already sent.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Detail writes the {"detail": ...} error envelope.
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, map[string]string{"detail": detail})
}

// errorMapping pairs a sentinel error with its HTTP representation.
type errorMapping struct {
	err    error
	status int
	detail string
}

var mappings = []errorMapping{
	{identityservice.ErrEmailAlreadyRegistered, http.StatusBadRequest, "Email already registered"},
	{identityservice.ErrInvalidCode, http.StatusBadRequest, "Invalid verification code"},
	{identityservice.ErrCodeExpired, http.StatusBadRequest, "Verification code expired"},
	{identityservice.ErrInvalidCredentials, http.StatusBadRequest, "Incorrect email or password"},
	{identityservice.ErrNotVerified, http.StatusBadRequest, "Email not verified"},
	{identityservice.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{identityservice.ErrSelfDeletion, http.StatusBadRequest, "Cannot delete own admin account"},
	{bookservice.ErrBookNotFound, http.StatusNotFound, "Book not found"},
	{bookservice.ErrTitleRequired, http.StatusBadRequest, "Title is required"},
	{authz.ErrNotAuthorized, http.StatusForbidden, "Not authorized to access this book"},
	{authz.ErrAdminRequired, http.StatusForbidden, "The user doesn't have enough privileges"},
}

// Error maps err to its HTTP status and detail. Unrecognized errors become an
// opaque 500; the cause goes to the log only.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			Detail(w, m.status, m.detail)
			return
		}
	}
	if log != nil {
		log.Error("internal error", zap.Error(err))
	}
	Detail(w, http.StatusInternalServerError, "Internal server error")
}
