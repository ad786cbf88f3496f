package client

import (
	"context"

	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is the gate device's view of the pass directory.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (role string, err error)
	AccessToken() string
	SetAccessToken(token string)

	// ListPasses returns undecoded pass documents; decoding is left to the
	// caller so one malformed record does not spoil the batch.
	ListPasses(ctx context.Context, status string) ([]*structpb.Struct, error)

	IssuePass(ctx context.Context, draft *passrpc.Document) (*passrpc.Document, error)
	RevokePass(ctx context.Context, id string) error
	CreateUser(ctx context.Context, user passrpc.NewUser) error
}
