package authz

import (
	"context"
	"errors"
	"testing"

	userdomain "unibook/backend/internal/user/domain"
)

func TestGate_CanAccess(t *testing.T) {
	gate, err := NewGate()
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	testCases := []struct {
		name          string
		actorID       string
		ownerID       string
		adminOverride bool
		wantAllowed   bool
	}{
		{"owner allowed", "u1", "u1", false, true},
		{"non-owner denied", "u2", "u1", false, false},
		{"admin override allows non-owner", "u2", "u1", true, true},
		{"empty actor denied", "", "", false, false},
		{"empty actor denied even matching empty owner", "", "", false, false},
		{"empty owner denied for non-empty actor", "u1", "", false, false},
		{"admin override with empty actor allowed", "", "u1", true, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.CanAccess(context.Background(), tc.actorID, tc.ownerID, tc.adminOverride)
			if tc.wantAllowed && err != nil {
				t.Errorf("CanAccess = %v, want nil", err)
			}
			if !tc.wantAllowed && !errors.Is(err, ErrNotAuthorized) {
				t.Errorf("CanAccess = %v, want ErrNotAuthorized", err)
			}
		})
	}
}

func TestGate_DeniesWhenPolicyMissing(t *testing.T) {
	// A gate whose compiler holds no policy produces an undefined query
	// result; that must deny, not allow.
	g := &Gate{}
	if err := g.CanAccess(context.Background(), "u1", "u1", true); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("CanAccess = %v, want ErrNotAuthorized", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	testCases := []struct {
		name    string
		user    *userdomain.User
		wantErr bool
	}{
		{"nil user denied", nil, true},
		{"non-admin denied", &userdomain.User{ID: "u1"}, true},
		{"admin allowed", &userdomain.User{ID: "u1", IsAdmin: true}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireAdmin(tc.user)
			if tc.wantErr && !errors.Is(err, ErrAdminRequired) {
				t.Errorf("RequireAdmin = %v, want ErrAdminRequired", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("RequireAdmin = %v, want nil", err)
			}
		})
	}
}
