// Package middleware carries request identity and guards authenticated routes.
package middleware

import (
	"context"

	userdomain "unibook/backend/internal/user/domain"
)

type contextKey int

const (
	userKey contextKey = iota
	clientIPKey
)

// WithIdentity stores the authenticated user and client IP on the context.
func WithIdentity(ctx context.Context, u *userdomain.User, ip string) context.Context {
	ctx = context.WithValue(ctx, userKey, u)
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetUser returns the authenticated user, or nil outside authenticated routes.
func GetUser(ctx context.Context) *userdomain.User {
	u, _ := ctx.Value(userKey).(*userdomain.User)
	return u
}

// GetClientIP returns the client IP recorded for this request, or "".
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
