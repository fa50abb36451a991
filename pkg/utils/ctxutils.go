package utils

import (
	"context"

	"helpdesk-system/pkg/contextkeys"
	apperrors "helpdesk-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}
