package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/logger"
)

// Status struct field names.
const (
	fieldState          = "state"
	fieldDisarmAttempts = "disarm_attempts"
	fieldChangedAt      = "changed_at"
)

// ErrMalformedStatus is returned when a status message cannot be decoded.
var ErrMalformedStatus = errors.New("malformed status")

// Service abstracts the controller operations the transport layer depends on.
type Service interface {
	Handle(ctx context.Context, cmd security.Command, code string) security.Status
	Status(ctx context.Context) security.Status
}

// Server implements the Panel gRPC API.
type Server struct {
	// service executes the commands.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Arm arms the system.
func (s *Server) Arm(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	return s.handle(ctx, req, security.CommandArm, "")
}

// Disarm tries to disarm the system with the code carried by the request.
func (s *Server) Disarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.handle(ctx, req, security.CommandDisarm, req.GetValue())
}

// Breach reports an intrusion.
func (s *Server) Breach(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	return s.handle(ctx, req, security.CommandBreach, "")
}

// Panic triggers the alarm.
func (s *Server) Panic(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	return s.handle(ctx, req, security.CommandPanic, "")
}

// Reset tries to stop the alarm with the code carried by the request.
func (s *Server) Reset(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.handle(ctx, req, security.CommandReset, req.GetValue())
}

// GetStatus returns the current controller status.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return encodeStatus(s.service.Status(ctx))
}

// handle validates the request and dispatches the command.
// A rejected code is a regular outcome and is reported through the returned status.
func (s *Server) handle(ctx context.Context, req any, cmd security.Command, code string) (*structpb.Struct, error) {
	if isNilRequest(req) {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result := s.service.Handle(ctx, cmd, code)

	logger.InfoKV(ctx, "Command processed", "command", cmd.String(), "state", result.State.String())

	return encodeStatus(result)
}

// isNilRequest reports whether req is a typed nil pointer.
func isNilRequest(req any) bool {
	switch typed := req.(type) {
	case *emptypb.Empty:
		return typed == nil
	case *wrapperspb.StringValue:
		return typed == nil
	default:
		return req == nil
	}
}

// encodeStatus converts a status to its wire form, mapping failures to codes.Internal.
func encodeStatus(s security.Status) (*structpb.Struct, error) {
	result, err := ToProtoStatus(s)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode status")
	}

	return result, nil
}

// ToProtoStatus converts a controller status to a protobuf Struct.
func ToProtoStatus(s security.Status) (*structpb.Struct, error) {
	changedAt := ""
	if !s.ChangedAt.IsZero() {
		changedAt = s.ChangedAt.UTC().Format(time.RFC3339Nano)
	}

	result, err := structpb.NewStruct(map[string]any{
		fieldState:          s.State.String(),
		fieldDisarmAttempts: s.DisarmAttempts,
		fieldChangedAt:      changedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode status: %w", err)
	}

	return result, nil
}

// FromProtoStatus converts a protobuf Struct produced by ToProtoStatus back to a status.
func FromProtoStatus(msg *structpb.Struct) (security.Status, error) {
	fields := msg.GetFields()

	kind, ok := security.ParseStateKind(fields[fieldState].GetStringValue())
	if !ok {
		return security.Status{}, fmt.Errorf("%w: unknown state %q", ErrMalformedStatus, fields[fieldState].GetStringValue())
	}

	var changedAt time.Time

	if raw := fields[fieldChangedAt].GetStringValue(); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return security.Status{}, fmt.Errorf("%w: changed_at: %w", ErrMalformedStatus, err)
		}

		changedAt = parsed
	}

	return security.Status{
		ChangedAt:      changedAt,
		DisarmAttempts: int(fields[fieldDisarmAttempts].GetNumberValue()),
		State:          kind,
	}, nil
}
