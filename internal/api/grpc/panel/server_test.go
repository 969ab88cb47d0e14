package panel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/security-panel/internal/domain/security"
)

const testCode = "1234"

// newTestServer creates a server backed by a real controller with a silent notifier.
func newTestServer() (*Server, *security.Controller) {
	controller := security.NewController(testCode, security.WithNotifier(
		security.NotifierFunc(func(context.Context, security.Notification) {}),
	))

	return NewServer(controller), controller
}

// requireState decodes the response and asserts the state.
func requireState(t *testing.T, want security.StateKind, msg *structpb.Struct, err error) security.Status {
	t.Helper()

	require.NoError(t, err)

	got, err := FromProtoStatus(msg)
	require.NoError(t, err)
	require.Equal(t, want, got.State)

	return got
}

// TestServer_Validation ensures nil requests return InvalidArgument errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	s, controller := newTestServer()
	ctx := context.Background()

	_, err := s.Arm(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Disarm(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Reset(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	require.Equal(t, security.StateDisarmed, controller.State())
}

// TestServer_InvalidCodeIsNotAnError verifies that a rejected code is reported through the status only.
func TestServer_InvalidCodeIsNotAnError(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer()
	ctx := context.Background()

	msg, err := s.Arm(ctx, new(emptypb.Empty))
	requireState(t, security.StateArmed, msg, err)

	msg, err = s.Disarm(ctx, wrapperspb.String("0000"))
	got := requireState(t, security.StateArmed, msg, err)
	require.Equal(t, 1, got.DisarmAttempts)

	msg, err = s.Disarm(ctx, wrapperspb.String(testCode))
	requireState(t, security.StateDisarmed, msg, err)
}

// TestServer_Commands exercises every command on the server implementation.
func TestServer_Commands(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer()
	ctx := context.Background()

	msg, err := s.Panic(ctx, new(emptypb.Empty))
	requireState(t, security.StateAlarm, msg, err)

	msg, err = s.Reset(ctx, wrapperspb.String(testCode))
	requireState(t, security.StateDisarmed, msg, err)

	msg, err = s.Breach(ctx, new(emptypb.Empty))
	requireState(t, security.StateSilentAlarm, msg, err)

	msg, err = s.GetStatus(ctx, new(emptypb.Empty))
	got := requireState(t, security.StateSilentAlarm, msg, err)
	require.False(t, got.ChangedAt.IsZero())
}

// TestProtoStatus_Conversion checks the status encoding and malformed inputs.
func TestProtoStatus_Conversion(t *testing.T) {
	t.Parallel()

	want := security.Status{
		ChangedAt:      time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		DisarmAttempts: 2,
		State:          security.StateArmed,
	}

	msg, err := ToProtoStatus(want)
	require.NoError(t, err)
	require.Equal(t, "armed", msg.GetFields()[fieldState].GetStringValue())

	got, err := FromProtoStatus(msg)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = FromProtoStatus(new(structpb.Struct))
	require.ErrorIs(t, err, ErrMalformedStatus)

	broken, err := structpb.NewStruct(map[string]any{
		fieldState:     "alarm",
		fieldChangedAt: "yesterday",
	})
	require.NoError(t, err)

	_, err = FromProtoStatus(broken)
	require.ErrorIs(t, err, ErrMalformedStatus)
}
