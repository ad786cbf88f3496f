package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      passrpc.PassDirectoryClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// AccessToken returns the token attached to outgoing calls, "" before login.
func (s *GRPCClient) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken replaces the token, e.g. with one restored from a saved
// session.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.AccessToken(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = passrpc.NewPassDirectoryClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetValue() != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Login exchanges credentials for an access token, kept for later calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (string, error) {
	req, err := passrpc.Encode(passrpc.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	var reply passrpc.LoginReply
	if err := passrpc.Decode(resp, &reply); err != nil {
		return "", err
	}
	s.SetAccessToken(reply.AccessToken)

	return reply.Role, nil
}

func (s *GRPCClient) ListPasses(ctx context.Context, passStatus string) ([]*structpb.Struct, error) {
	req, err := passrpc.Encode(passrpc.ListRequest{Status: passStatus})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.ListPasses(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	docs := make([]*structpb.Struct, 0, len(resp.GetValues()))
	for _, v := range resp.GetValues() {
		docs = append(docs, v.GetStructValue())
	}
	return docs, nil
}

func (s *GRPCClient) IssuePass(ctx context.Context, draft *passrpc.Document) (*passrpc.Document, error) {
	req, err := passrpc.Encode(draft)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.IssuePass(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return passrpc.DecodeDocument(resp)
}

func (s *GRPCClient) RevokePass(ctx context.Context, id string) error {
	if _, err := s.client.RevokePass(ctx, wrapperspb.String(id)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) CreateUser(ctx context.Context, user passrpc.NewUser) error {
	req, err := passrpc.Encode(user)
	if err != nil {
		return err
	}
	if _, err := s.client.CreateUser(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
