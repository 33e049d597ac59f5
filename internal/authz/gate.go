// Package authz decides whether an actor may touch a resource. All resource
// access flows through the gate; evaluation errors deny.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	userdomain "unibook/backend/internal/user/domain"
)

var (
	// ErrNotAuthorized is returned when the actor does not own the resource.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrAdminRequired is returned when a non-admin calls an admin surface.
	ErrAdminRequired = errors.New("admin required")
)

const allowQuery = "data.unibook.authz.allow"

const ownershipPolicy = `package unibook.authz

default allow = false

allow if {
	input.admin_override
}

allow if {
	input.actor_id != ""
	input.actor_id == input.owner_id
}
`

// Gate evaluates the ownership policy with OPA Rego. The policy is compiled
// once at construction.
type Gate struct {
	compiler *ast.Compiler
}

func NewGate() (*Gate, error) {
	modules := map[string]string{"ownership.rego": ownershipPolicy}
	compiler, err := ast.CompileModules(modules)
	if err != nil {
		return nil, fmt.Errorf("compile ownership policy: %w", err)
	}
	return &Gate{compiler: compiler}, nil
}

// CanAccess returns nil when actorID owns the resource, or when adminOverride
// is set. Any evaluation failure denies with ErrNotAuthorized.
func (g *Gate) CanAccess(ctx context.Context, actorID, ownerID string, adminOverride bool) error {
	input := map[string]interface{}{
		"actor_id":       actorID,
		"owner_id":       ownerID,
		"admin_override": adminOverride,
	}
	q := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(g.compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return ErrNotAuthorized
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return ErrNotAuthorized
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok || !allowed {
		return ErrNotAuthorized
	}
	return nil
}

// RequireAdmin returns nil only for a verified admin user. A nil user denies.
func RequireAdmin(u *userdomain.User) error {
	if u == nil || !u.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}
