package userctx

import "context"

// Context key type
type contextKey string

const accountIDKey contextKey = "account_id"
const nicknameKey contextKey = "user_nickname"

// SetAccountID adds the signed in account ID to request context
func SetAccountID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// GetAccountID retrieves the account ID from request context, 0 when anonymous
func GetAccountID(ctx context.Context) int64 {
	if id, ok := ctx.Value(accountIDKey).(int64); ok {
		return id
	}
	return 0
}

// SetNickname adds the display name to request context
func SetNickname(ctx context.Context, nickname string) context.Context {
	return context.WithValue(ctx, nicknameKey, nickname)
}

// GetNickname retrieves the display name from request context
func GetNickname(ctx context.Context) string {
	nickname, ok := ctx.Value(nicknameKey).(string)
	if !ok {
		return "anonymous"
	}
	return nickname
}
