// Package grpc serves the PassDirectory gRPC service: login, pass listing
// for gate devices and pass administration.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
	"github.com/dmitrijs2005/gateguard/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account logic the handlers need.
type UserService interface {
	Login(ctx context.Context, userName, password string) (*services.LoginResult, error)
	CreateUser(ctx context.Context, u services.NewUser) (*models.User, error)
}

// PassService is the pass logic the handlers need.
type PassService interface {
	Issue(ctx context.Context, issuerID string, d services.PassDraft) (*services.IssuedPass, error)
	Revoke(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]*models.Pass, error)
}

type GRPCServer struct {
	passrpc.UnimplementedPassDirectoryServer
	address   string
	users     UserService
	passes    PassService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ps PassService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		passes:    ps,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	passrpc.RegisterPassDirectoryServer(srv, s)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
