package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
	Plate(ctx context.Context, args []string) error
	ID(ctx context.Context, args []string) error
	Scan(ctx context.Context, args []string) error
	IssueStandard(ctx context.Context) error
	IssueVisitor(ctx context.Context) error
	Revoke(ctx context.Context, args []string) error
	AddUser(ctx context.Context) error
}

const helpText = `Available commands:
  plate <letters> <digits>   look a pass up by plate
  id <pass id>               look a pass up by id
  scan [qr text]             verify a scanned QR code
  status                     connectivity, cached passes and last sync
  sync                       refresh the local cache now
  login                      sign in (online only)
  logout                     forget the saved session
  issue-standard             issue a standard pass (admin)
  issue-visitor              issue a visitor pass (admin)
  revoke <pass id>           revoke a pass (admin)
  adduser                    create a user account (admin)
  exit | quit                leave the program`

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is cancelled, and dispatches them to a. The prompt shows statusFn().
//
// Lookups never wait on the network and work before login. Errors returned
// by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("gate %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
			if !a.isLoggedIn() {
				printlnFn("Not signed in: lookups work, directory commands need 'login'.")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "sync":
			cmdErr = a.Sync(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "plate", "p":
			cmdErr = a.Plate(ctx, args)

		case "id":
			cmdErr = a.ID(ctx, args)

		case "scan", "qr":
			cmdErr = a.Scan(ctx, args)

		case "issue-standard":
			cmdErr = a.IssueStandard(ctx)

		case "issue-visitor":
			cmdErr = a.IssueVisitor(ctx)

		case "revoke":
			cmdErr = a.Revoke(ctx, args)

		case "adduser":
			cmdErr = a.AddUser(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
