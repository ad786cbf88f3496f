package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
	"github.com/dmitrijs2005/gateguard/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("OK"), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in passrpc.LoginRequest
	if err := passrpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.users.Login(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "Login rejected", "username", in.Username)
			return nil, status.Error(codes.Unauthenticated, "invalid username or password")
		}
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Logged in", "username", in.Username, "role", res.Role)
	return passrpc.Encode(passrpc.LoginReply{AccessToken: res.AccessToken, Role: res.Role})
}

func (s *GRPCServer) ListPasses(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var in passrpc.ListRequest
	if req != nil && len(req.GetFields()) > 0 {
		if err := passrpc.Decode(req, &in); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	list, err := s.passes.List(ctx, in.Status)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	docs := make([]*passrpc.Document, 0, len(list))
	for _, p := range list {
		docs = append(docs, toDocument(p))
	}

	out, err := passrpc.EncodeDocuments(docs)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return out, nil
}

func (s *GRPCServer) IssuePass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	doc, err := passrpc.DecodeDocument(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	draft, err := toDraft(doc)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	issued, err := s.passes.Issue(ctx, claims.UserID, draft)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := toDocument(issued.Pass)
	out.QR = issued.QR
	return passrpc.Encode(out)
}

func (s *GRPCServer) RevokePass(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := s.passes.Revoke(ctx, req.GetValue()); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) CreateUser(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	var in passrpc.NewUser
	if err := passrpc.Decode(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	_, err := s.users.CreateUser(ctx, services.NewUser{
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
		Company:  in.Company,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

// toStatus maps service errors to gRPC statuses. Unknown errors are logged
// and hidden behind codes.Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorValidation):
		msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
		return status.Error(codes.InvalidArgument, msg)
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toDocument(p *models.Pass) *passrpc.Document {
	return &passrpc.Document{
		ID:               p.ID,
		Type:             p.Type,
		PlateAlpha:       p.PlateAlpha,
		PlateNum:         p.PlateNum,
		Location:         p.Location,
		Status:           p.Status,
		ExpiresAt:        passrpc.FromTime(p.ExpiresAt),
		CreatedAt:        passrpc.FromTime(p.CreatedAt),
		CreatedBy:        p.CreatedBy,
		CreatedByName:    p.CreatedByName,
		CreatedByCompany: p.CreatedByCompany,
		OwnerName:        p.OwnerName,
		OwnerCompany:     p.OwnerCompany,
		Serial:           p.Serial,
		VisitorName:      p.VisitorName,
		PersonToVisit:    p.PersonToVisit,
		Purpose:          p.Purpose,
	}
}

func toDraft(d *passrpc.Document) (services.PassDraft, error) {
	var expiresAt time.Time
	if ts := d.ExpiresAt.Proto(); ts != nil {
		if err := ts.CheckValid(); err != nil {
			return services.PassDraft{}, err
		}
		expiresAt = ts.AsTime()
	}

	return services.PassDraft{
		Type:          d.Type,
		PlateAlpha:    d.PlateAlpha,
		PlateNum:      d.PlateNum,
		Location:      d.Location,
		ExpiresAt:     expiresAt,
		OwnerName:     d.OwnerName,
		OwnerCompany:  d.OwnerCompany,
		Serial:        d.Serial,
		VisitorName:   d.VisitorName,
		PersonToVisit: d.PersonToVisit,
		Purpose:       d.Purpose,
	}, nil
}
