package ctxutil

import (
	"context"
)

type ctxKey string

const (
	chatIDKey    ctxKey = "chat_id"
	requestIDKey ctxKey = "request_id"
	relayKey     ctxKey = "relay"
)

// WithChatID stores the chat ID of the command being handled.
func WithChatID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, chatIDKey, id)
}

// ChatIDFromCtx extracts the chat ID from the context.
// Returns 0 and false if the value is missing or of the wrong type.
func ChatIDFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(chatIDKey).(int64)
	return id, ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRelay stores the name of the authenticated bot relay.
func WithRelay(ctx context.Context, relay string) context.Context {
	return context.WithValue(ctx, relayKey, relay)
}

// RelayFromCtx extracts the relay name from the context.
// Returns an empty string if absent.
func RelayFromCtx(ctx context.Context) string {
	relay, _ := ctx.Value(relayKey).(string)
	return relay
}
