// Package server assembles the HTTP surface.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	adminhandler "unibook/backend/internal/admin/handler"
	bookhandler "unibook/backend/internal/book/handler"
	healthhandler "unibook/backend/internal/health/handler"
	identityhandler "unibook/backend/internal/identity/handler"
	"unibook/backend/internal/server/middleware"
)

// Deps carries the wired handlers for the router.
type Deps struct {
	Auth     *middleware.Authenticator
	Identity *identityhandler.Handler
	Books    *bookhandler.Handler
	Admin    *adminhandler.Handler
	Health   *healthhandler.Handler
	Log      *zap.Logger

	// DevCodeEnabled mounts the dev verification-code endpoint. Never set in
	// production.
	DevCodeEnabled bool
}

// NewRouter builds the route table. Auth endpoints and /health are public;
// everything else requires a bearer token.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	if d.Log != nil {
		r.Use(requestLogger(d.Log))
	}

	r.HandleFunc("/health", d.Health.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/register", d.Identity.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", d.Identity.Verify).Methods(http.MethodPost)
	api.HandleFunc("/auth/resend-code", d.Identity.ResendCode).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", d.Identity.Login).Methods(http.MethodPost)

	if d.DevCodeEnabled {
		r.HandleFunc("/dev/auth/code", d.Identity.DevCode).Methods(http.MethodGet)
	}

	authed := api.NewRoute().Subrouter()
	authed.Use(d.Auth.Require)

	authed.HandleFunc("/books", d.Books.Create).Methods(http.MethodPost)
	authed.HandleFunc("/books", d.Books.List).Methods(http.MethodGet)
	authed.HandleFunc("/books/{id}", d.Books.Get).Methods(http.MethodGet)
	authed.HandleFunc("/books/{id}", d.Books.Update).Methods(http.MethodPut)
	authed.HandleFunc("/books/{id}", d.Books.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/admin/users", d.Admin.ListUsers).Methods(http.MethodGet)
	authed.HandleFunc("/admin/users/{id}", d.Admin.DeleteUser).Methods(http.MethodDelete)
	authed.HandleFunc("/admin/books", d.Admin.ListBooks).Methods(http.MethodGet)
	authed.HandleFunc("/admin/books/{id}", d.Admin.DeleteBook).Methods(http.MethodDelete)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
