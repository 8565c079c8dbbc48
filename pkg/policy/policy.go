// Package policy decides which roles may invoke which ledger operations.
//
// The grant table is closed: unknown roles and unknown operations are denied.
package policy

import (
	"context"
	"fmt"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
)

// Operation is a protected ledger operation.
type Operation int

const (
	OpDeposit Operation = iota + 1
	OpWithdraw
	OpTransfer
	OpHistory
	OpListUsers
	OpGetUser
	OpCreateEmployee
	OpListEmployees
	OpRemoveEmployee
)

func (o Operation) String() string {
	switch o {
	case OpDeposit:
		return "deposit"
	case OpWithdraw:
		return "withdraw"
	case OpTransfer:
		return "transfer"
	case OpHistory:
		return "history"
	case OpListUsers:
		return "list_users"
	case OpGetUser:
		return "get_user"
	case OpCreateEmployee:
		return "create_employee"
	case OpListEmployees:
		return "list_employees"
	case OpRemoveEmployee:
		return "remove_employee"
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// Principal is the authenticated caller of one request.
type Principal struct {
	AccountID uuid.UUID
	Role      account.Role
}

// ErrUnauthenticated is returned when no principal accompanies the request.
var ErrUnauthenticated = fmt.Errorf("%w: missing or invalid token", domain.ErrUnauthorized)

// Authorize returns nil when p may perform op, ErrUnauthenticated when p is
// nil, and an error wrapping domain.ErrForbidden otherwise.
func Authorize(p *Principal, op Operation) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !Allowed(p.Role, op) {
		return fmt.Errorf("%w: role %q may not %s", domain.ErrForbidden, p.Role, op)
	}
	return nil
}

// Allowed reports whether role is granted op.
func Allowed(role account.Role, op Operation) bool {
	switch op {
	case OpDeposit, OpWithdraw, OpTransfer, OpHistory:
		return role == account.RoleUser
	case OpListUsers, OpGetUser:
		switch role {
		case account.RoleEmployee, account.RoleManager, account.RoleAdmin:
			return true
		case account.RoleUser:
			return false
		}
		return false
	case OpCreateEmployee, OpListEmployees, OpRemoveEmployee:
		return role == account.RoleAdmin
	}
	return false
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by NewContext, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
