package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Sync(ctx context.Context) error   { return f.record("sync", nil) }
func (f *fakeExec) Status(ctx context.Context) error { return f.record("status", nil) }
func (f *fakeExec) Plate(ctx context.Context, args []string) error {
	return f.record("plate", args)
}
func (f *fakeExec) ID(ctx context.Context, args []string) error   { return f.record("id", args) }
func (f *fakeExec) Scan(ctx context.Context, args []string) error { return f.record("scan", args) }
func (f *fakeExec) IssueStandard(ctx context.Context) error {
	return f.record("issue-standard", nil)
}
func (f *fakeExec) IssueVisitor(ctx context.Context) error {
	return f.record("issue-visitor", nil)
}
func (f *fakeExec) Revoke(ctx context.Context, args []string) error {
	return f.record("revoke", args)
}
func (f *fakeExec) AddUser(ctx context.Context) error { return f.record("adduser", nil) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"plate ABC 1234",
		"P xy9",
		"id p-1",
		"scan {\"v\":1}",
		"status",
		"sync",
		"issue-standard",
		"issue-visitor",
		"revoke p-2",
		"adduser",
		"logout",
		"",
		"exit",
		"status",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(offline)" }, rdr(input))

	assert.Equal(t, []string{
		"login", "plate", "plate", "id", "scan", "status", "sync",
		"issue-standard", "issue-visitor", "revoke", "adduser", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"xy9"}, exec.args["plate"])
	assert.Equal(t, []string{"p-1"}, exec.args["id"])
	assert.Equal(t, []string{"p-2"}, exec.args["revoke"])
	assert.Equal(t, []string{`{"v":1}`}, exec.args["scan"])
}

func TestRunREPL_PrintsErrorsAndUnknown(t *testing.T) {
	printed := captureOutput(t)

	exec := &fakeExec{err: assert.AnError}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("sync\nfoobar\nquit\n"))

	out := strings.Join(*printed, "")
	assert.Contains(t, out, "gate s> ")
	assert.Contains(t, out, "Error: "+assert.AnError.Error())
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_HelpMentionsLoginWhenSignedOut(t *testing.T) {
	printed := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\n"))
	assert.Contains(t, strings.Join(*printed, ""), "directory commands need 'login'")

	*printed = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\n"))
	out := strings.Join(*printed, "")
	assert.Contains(t, out, "plate <letters> <digits>")
	assert.NotContains(t, out, "need 'login'")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("status"))
	require.Equal(t, []string{"status"}, exec.calls)
}

func TestRunREPL_StopsOnCancel(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("status\n"))
	assert.Empty(t, exec.calls)
}
