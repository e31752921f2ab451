package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/user"
)

// Actor is the authenticated user performing a request, as carried in the
// access-token claims. Services use it for audit attribution.
type Actor struct {
	ID   string
	Name string
	Role user.Role
}

// ActorFromContext extracts the acting user from the JWT claims in ctx.
// Returns ErrUnauthenticated when no usable identity is present.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrUnauthenticated
	}

	actor := Actor{ID: userID}
	if name, ok := claims["name"].(string); ok {
		actor.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		actor.Role = user.Role(role)
	}

	return actor, nil
}
