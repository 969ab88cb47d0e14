package panel

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/logger"
)

// startBufconn serves the panel over an in-memory listener and returns a connected client.
func startBufconn(t *testing.T) *PanelClient {
	t.Helper()

	var (
		listener   = bufconn.Listen(1 << 20)
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(ActorInterceptor()))
		server, _  = newTestServer()
	)

	RegisterPanelServer(grpcServer, server)

	go func() {
		_ = grpcServer.Serve(listener) //nolint:errcheck // Serve returns after Stop in cleanup.
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		grpcServer.Stop()
	})

	return NewPanelClient(conn)
}

// TestTransport_ReferenceTrace drives the reference scenario through a real gRPC connection.
func TestTransport_ReferenceTrace(t *testing.T) {
	t.Parallel()

	client := startBufconn(t)
	ctx := AppendActor(context.Background(), &security.Actor{
		Hostname: "lobby",
		Username: "guard",
	})

	msg, err := client.Reset(ctx, "3333")
	requireState(t, security.StateDisarmed, msg, err)

	msg, err = client.Arm(ctx)
	requireState(t, security.StateArmed, msg, err)

	msg, err = client.Disarm(ctx, "23232")
	got := requireState(t, security.StateArmed, msg, err)
	require.Equal(t, 1, got.DisarmAttempts)

	msg, err = client.Disarm(ctx, testCode)
	requireState(t, security.StateDisarmed, msg, err)

	msg, err = client.Arm(ctx)
	got = requireState(t, security.StateArmed, msg, err)
	require.Zero(t, got.DisarmAttempts)

	msg, err = client.Panic(ctx)
	requireState(t, security.StateAlarm, msg, err)

	msg, err = client.Reset(ctx, testCode)
	requireState(t, security.StateDisarmed, msg, err)

	msg, err = client.Breach(ctx)
	requireState(t, security.StateSilentAlarm, msg, err)

	msg, err = client.GetStatus(ctx)
	requireState(t, security.StateSilentAlarm, msg, err)
}

// TestActorFromContext verifies actor extraction from incoming metadata.
func TestActorFromContext(t *testing.T) {
	t.Parallel()

	require.Nil(t, ActorFromContext(context.Background()))
	require.Nil(t, ActorFromContext(metadata.NewIncomingContext(context.Background(), metadata.MD{})))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		actorHostnameKey, "lobby",
		actorUsernameKey, "guard",
	))

	require.Equal(t, &security.Actor{Hostname: "lobby", Username: "guard"}, ActorFromContext(ctx))
	require.Equal(t, context.Background(), AppendActor(context.Background(), nil))
}

// TestActorInterceptor ensures the handler logger is scoped with actor and method.
func TestActorInterceptor(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)

	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())
	ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(
		actorHostnameKey, "lobby",
		actorUsernameKey, "guard",
	))

	info := &grpc.UnaryServerInfo{FullMethod: ArmFullMethod}

	_, err := ActorInterceptor()(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		logger.Info(ctx, "handled")

		return nil, nil //nolint:nilnil // Test handler has nothing to return.
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "guard@lobby", entries[0].ContextMap()["actor"])
	require.Equal(t, "Arm", entries[0].ContextMap()["method"])
}
