package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"unibook/backend/internal/security"
	"unibook/backend/internal/server/respond"
	"unibook/backend/internal/user/repository"
)

const bearerPrefix = "Bearer "

// Authenticator validates bearer tokens and resolves the account behind them.
type Authenticator struct {
	tokens *security.TokenProvider
	users  repository.UserRepository
}

func NewAuthenticator(tokens *security.TokenProvider, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Require rejects requests without a valid bearer token for an existing
// account. On success the user and client IP are attached to the context.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		email, err := a.tokens.Validate(token)
		if err != nil {
			respond.Detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		u, err := a.users.GetByEmail(r.Context(), email)
		if err != nil || u == nil {
			respond.Detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		ctx := WithIdentity(r.Context(), u, clientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AuditIP adapts GetClientIP for the audit logger.
func AuditIP(ctx context.Context) string {
	return GetClientIP(ctx)
}
