package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fulbito-league/internal/domain/user"
	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// principalOrError is for routes behind RequireAuth; a missing principal means
// the route was registered without it.
func principalOrError(ctx context.Context) (user.Principal, error) {
	if p, ok := ctx.Value(principalKey{}).(user.Principal); ok {
		return p, nil
	}
	return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
}
