package httpapi

import (
	"context"

	"github.com/google/uuid"

	appBarter "github.com/prashana14/StudyReuse-sub000/internal/application/barter"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/user"
)

type authContextKey string

const (
	authUserKey    authContextKey = "authUser"
	authSessionKey authContextKey = "authSession"
)

// AuthUser represents the authenticated user in context.
type AuthUser struct {
	UserID    uuid.UUID
	Username  string
	Role      user.Role
	SessionID uuid.UUID
}

func (u AuthUser) ActorString() string {
	return "user:" + u.Username
}

func (u AuthUser) Actor() appBarter.Actor {
	return appBarter.Actor{UserID: u.UserID, Username: u.Username, Role: u.Role}
}

func withAuthUser(ctx context.Context, u *AuthUser) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, authUserKey, u)
}

func authUserFromContext(ctx context.Context) *AuthUser {
	val := ctx.Value(authUserKey)
	if v, ok := val.(*AuthUser); ok {
		return v
	}
	return nil
}
