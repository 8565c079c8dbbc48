package policy_test

import (
	"context"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed_GrantTable(t *testing.T) {
	t.Parallel()

	roles := []account.Role{account.RoleUser, account.RoleEmployee, account.RoleManager, account.RoleAdmin}
	grants := map[policy.Operation][]account.Role{
		policy.OpDeposit:        {account.RoleUser},
		policy.OpWithdraw:       {account.RoleUser},
		policy.OpTransfer:       {account.RoleUser},
		policy.OpHistory:        {account.RoleUser},
		policy.OpListUsers:      {account.RoleEmployee, account.RoleManager, account.RoleAdmin},
		policy.OpGetUser:        {account.RoleEmployee, account.RoleManager, account.RoleAdmin},
		policy.OpCreateEmployee: {account.RoleAdmin},
		policy.OpListEmployees:  {account.RoleAdmin},
		policy.OpRemoveEmployee: {account.RoleAdmin},
	}

	for op, allowed := range grants {
		for _, role := range roles {
			want := false
			for _, r := range allowed {
				if r == role {
					want = true
				}
			}
			assert.Equal(t, want, policy.Allowed(role, op), "%s / %s", role, op)
		}
	}
}

func TestAllowed_UnknownIsDenied(t *testing.T) {
	t.Parallel()
	assert.False(t, policy.Allowed("auditor", policy.OpListUsers))
	assert.False(t, policy.Allowed(account.RoleAdmin, policy.Operation(99)))
	assert.Equal(t, "operation(99)", policy.Operation(99).String())
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	err := policy.Authorize(nil, policy.OpDeposit)
	require.ErrorIs(t, err, policy.ErrUnauthenticated)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// scenario: a user cannot list users
	user := &policy.Principal{AccountID: uuid.New(), Role: account.RoleUser}
	err = policy.Authorize(user, policy.OpListUsers)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "list_users")

	// staff never move money
	manager := &policy.Principal{AccountID: uuid.New(), Role: account.RoleManager}
	assert.ErrorIs(t, policy.Authorize(manager, policy.OpTransfer), domain.ErrForbidden)
	assert.NoError(t, policy.Authorize(manager, policy.OpGetUser))
	assert.NoError(t, policy.Authorize(user, policy.OpTransfer))
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()
	_, ok := policy.FromContext(context.Background())
	assert.False(t, ok)

	p := &policy.Principal{AccountID: uuid.New(), Role: account.RoleUser}
	got, ok := policy.FromContext(policy.NewContext(context.Background(), p))
	require.True(t, ok)
	assert.Equal(t, p, got)
}
