package panel

import (
	"context"
	"path"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/logger"
)

// Metadata keys carrying the issuing actor.
const (
	actorHostnameKey = "x-actor-hostname"
	actorUsernameKey = "x-actor-username"
)

// AppendActor attaches the actor to the outgoing request metadata.
func AppendActor(ctx context.Context, actor *security.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		actorHostnameKey, actor.Hostname,
		actorUsernameKey, actor.Username,
	)
}

// ActorFromContext extracts the actor from incoming request metadata.
// It returns nil when the caller did not identify itself.
func ActorFromContext(ctx context.Context) *security.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	var (
		hostnames = md.Get(actorHostnameKey)
		usernames = md.Get(actorUsernameKey)
	)

	if len(hostnames) == 0 && len(usernames) == 0 {
		return nil
	}

	actor := new(security.Actor)
	if len(hostnames) > 0 {
		actor.Hostname = hostnames[0]
	}

	if len(usernames) > 0 {
		actor.Username = usernames[0]
	}

	return actor
}

// ActorInterceptor scopes the request logger with the calling actor and method.
func ActorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithKV(ctx,
			"actor", ActorFromContext(ctx).String(),
			"method", path.Base(info.FullMethod),
		)

		return handler(ctx, req)
	}
}
