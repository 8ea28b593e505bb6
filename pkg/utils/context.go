package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorIDKey   contextKey = "actor_id"
	ActorTypeKey contextKey = "actor_type"
	RoleKey      contextKey = "role"
	TokenKey     contextKey = "token"
)

// Actor types stamped by the auth middleware.
const (
	ActorTypeStaff    = "user"
	ActorTypeCustomer = "customer"
)

func GetActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actorIDVal := ctx.Value(ActorIDKey)
	if actorIDVal == nil {
		return uuid.Nil, false
	}

	actorIDStr, ok := actorIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	actorID, err := uuid.Parse(actorIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return actorID, true
}

func GetActorTypeFromContext(ctx context.Context) (string, bool) {
	actorTypeVal := ctx.Value(ActorTypeKey)
	if actorTypeVal == nil {
		return "", false
	}

	actorType, ok := actorTypeVal.(string)
	return actorType, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetActorContext(ctx context.Context, actorID uuid.UUID, actorType, role string) context.Context {
	ctx = context.WithValue(ctx, ActorIDKey, actorID.String())
	ctx = context.WithValue(ctx, ActorTypeKey, actorType)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}
