package transport

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

const (
	// CallerMetadataKey carries the caller account on gRPC requests.
	CallerMetadataKey = "x-escrow-caller"
	// CallerHeader carries the caller account on REST requests.
	CallerHeader = "X-Escrow-Caller"
)

// WithCaller returns a context whose outgoing gRPC calls identify as caller.
func WithCaller(ctx context.Context, caller string) context.Context {
	if caller == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, CallerMetadataKey, caller)
}

// CallerFromContext reads the caller account of an incoming gRPC request.
func CallerFromContext(ctx context.Context) model.Account {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(CallerMetadataKey)
	if len(values) == 0 {
		return ""
	}
	return model.Account(values[0])
}
