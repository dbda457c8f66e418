package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/stockroom_backend/appctx"
)

func GetUserIdFromContext(ctx context.Context) int {
	userId, ok := ctx.Value(appctx.ContextKeyUserId).(int)
	if !ok {
		return 0
	}
	return userId
}

func GetUsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(appctx.ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return username
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, ok := ctx.Value(appctx.ContextKeyUserRole).(string)
	if !ok {
		return ""
	}
	return role
}

func SetUserIdInContext(ctx context.Context, userId int) context.Context {
	return context.WithValue(ctx, appctx.ContextKeyUserId, userId)
}

func SetUsernameInContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, appctx.ContextKeyUsername, username)
}

func SetUserRoleInContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, appctx.ContextKeyUserRole, role)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, appctx.ContextKeyCorrelationId, correlationId)
}

func GetCorrelationIdFromContext(ctx context.Context) string {
	correlationId, ok := ctx.Value(appctx.ContextKeyCorrelationId).(string)
	if !ok {
		return ""
	}
	return correlationId
}
