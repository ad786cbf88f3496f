// Package client connects the gate device to the pass directory and opens
// its local database.
//
// GRPCClient implements Client over the PassDirectory gRPC service. It keeps
// the access token obtained by Login and attaches it to every call through a
// unary interceptor. gRPC status codes are mapped to sentinel errors:
// ErrUnavailable for Unavailable and DeadlineExceeded, ErrUnauthorized for
// Unauthenticated and PermissionDenied, common.ErrorNotFound,
// common.ErrorValidation and common.ErrorAlreadyExists for the matching codes.
//
// InitDatabase opens the SQLite file used as the offline cache and applies
// the embedded goose migrations.
package client
