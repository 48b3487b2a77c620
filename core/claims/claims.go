package claims

import (
	"context"
	"errors"
)

const (
	RoleClient   = "Client"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// Claims is the identity of the acting account, resolved from the session.
type Claims struct {
	AccountID int
	Role      string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

// IsStaff reports whether the account may manage inventory. Both Employee
// and Admin accounts qualify, matching the management gate of the app.
func IsStaff(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Role == RoleEmployee || c.Role == RoleAdmin
}

func IsAccount(ctx context.Context, id int) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.AccountID == id
}
