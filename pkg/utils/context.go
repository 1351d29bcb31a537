package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
)

// Principal adalah view transient dari user yang sudah terautentikasi,
// dibangun per request dan dibuang setelah response.
type Principal struct {
	ID                 uuid.UUID
	Email              string
	Role               string
	MustChangePassword bool
}

func SetPrincipalContext(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principalVal := ctx.Value(PrincipalKey)
	if principalVal == nil {
		return nil, false
	}

	principal, ok := principalVal.(*Principal)
	if !ok || principal == nil {
		return nil, false
	}

	return principal, true
}
