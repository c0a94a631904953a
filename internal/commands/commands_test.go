package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tdo/internal/auth"
	"tdo/internal/commands"
	"tdo/internal/config"
	"tdo/internal/exitcode"
	"tdo/internal/service"
	"tdo/internal/testutil"
)

// runCommand is a helper to run a command with a FakeService and a fresh
// session over a temp config dir.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	sess := newSession(t, true)
	return runCommandWithSession(t, cmd, sess, svc, args, quiet)
}

func runCommandWithSession(t *testing.T, cmd commands.Command, sess *auth.Manager, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, sess, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// newSession builds a session manager, optionally seeded with a valid token.
func newSession(t *testing.T, loggedIn bool) *auth.Manager {
	t.Helper()

	sess := auth.NewManager(auth.NewStore(&config.Config{Dir: t.TempDir()}), nil)
	if loggedIn {
		token := testutil.MintToken(t, "42", "alice@example.com", time.Now().Add(time.Hour))
		if err := sess.SaveToken(token); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}
	}
	return sess
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tdo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	testutil.GoldenString(t, "help", stdout)
}

// Tests for list command
func TestListCommand_ServerOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, service.PriorityMedium)
	svc.AddTask("Buy eggs", false, service.PriorityMedium)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("all")
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	// Newest first, as the backend orders them.
	expected := "   2  [ ] Buy eggs\n   1  [ ] Buy milk\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	cmd.SetFilter("all")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_FilterActive(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("done one", true, service.PriorityMedium)
	svc.AddTask("open one", false, service.PriorityMedium)
	svc.AddTask("open two", false, service.PriorityMedium)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("active")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Count(stdout, "\n") != 2 {
		t.Errorf("expected 2 lines for active filter, got %q", stdout)
	}
	if strings.Contains(stdout, "done one") {
		t.Errorf("active filter must not show completed tasks, got %q", stdout)
	}
}

func TestListCommand_FilterCompleted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("done one", true, service.PriorityMedium)
	svc.AddTask("open one", false, service.PriorityMedium)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("completed")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Count(stdout, "\n") != 1 {
		t.Errorf("expected 1 line for completed filter, got %q", stdout)
	}
	if !strings.Contains(stdout, "done one") {
		t.Errorf("completed filter must show the completed task, got %q", stdout)
	}
}

func TestListCommand_InvalidFilter(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	cmd.SetFilter("bogus")
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid filter") {
		t.Errorf("expected invalid filter error, got %q", stderr)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetPriority("medium")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Buy milk") {
		t.Errorf("expected created task line, got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("expected task created, got %+v", tasks)
	}
	if tasks[0].Completed {
		t.Error("new task must start active")
	}
	if tasks[0].Priority != service.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", tasks[0].Priority)
	}
}

func TestAddCommand_EmptyTitle(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetPriority("medium")
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "title required") {
		t.Errorf("expected title error, got %q", stderr)
	}
	// The rejection happens before any service call.
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

func TestAddCommand_WhitespaceTitle(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetPriority("medium")
	_, _, code := runCommand(t, cmd, svc, []string{"  ", " "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

func TestAddCommand_InvalidPriority(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetPriority("urgent")
	_, stderr, code := runCommand(t, cmd, svc, []string{"title"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid priority") {
		t.Errorf("expected priority error, got %q", stderr)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

// Tests for done and undo commands
func TestDoneCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", false, service.PriorityMedium)

	cmd := &commands.DoneCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "[x]") {
		t.Errorf("expected completed mark in output, got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Errorf("expected task %d completed, got %+v", task.ID, tasks)
	}
	if tasks[0].Title != "Buy milk" {
		t.Errorf("other fields must be unchanged, got %+v", tasks[0])
	}
}

func TestUndoCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", true, service.PriorityMedium)

	cmd := &commands.UndoCmd{}
	_, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if tasks[0].Completed {
		t.Error("expected task reopened")
	}
}

func TestDoneCommand_NoID(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "task id required") {
		t.Errorf("expected id error, got %q", stderr)
	}
}

func TestDoneCommand_BadID(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid task id") {
		t.Errorf("expected id error, got %q", stderr)
	}
	if len(svc.Calls) != 0 {
		t.Errorf("expected no service calls, got %v", svc.Calls)
	}
}

func TestDoneCommand_UnknownID(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, _, code := runCommand(t, cmd, svc, []string{"99"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, service.PriorityMedium)
	svc.AddTask("Buy eggs", false, service.PriorityMedium)

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background())
	if len(tasks) != 1 {
		t.Errorf("expected one task left, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ID == 1 {
			t.Error("deleted task still present")
		}
	}
}

func TestRmCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, service.PriorityMedium)

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

// Tests for progress command
func TestProgressCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", true, service.PriorityHigh)
	svc.AddTask("b", false, service.PriorityHigh)
	svc.AddTask("c", false, service.PriorityLow)
	svc.AddTask("d", true, service.PriorityLow)

	cmd := &commands.ProgressCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "4 tasks: 2 active, 2 completed") {
		t.Errorf("expected summary line, got %q", stdout)
	}
	if !strings.Contains(stdout, " 50%") {
		t.Errorf("expected 50%% overall, got %q", stdout)
	}
	if !strings.Contains(stdout, "high") || !strings.Contains(stdout, "medium") || !strings.Contains(stdout, "low") {
		t.Errorf("expected per-priority breakdown, got %q", stdout)
	}
}

func TestProgressCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ProgressCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	// Zero tasks is 0%, not a division failure.
	if !strings.Contains(stdout, "0 tasks: 0 active, 0 completed") {
		t.Errorf("expected empty summary, got %q", stdout)
	}
	if !strings.Contains(stdout, "  0%") {
		t.Errorf("expected 0%% for empty set, got %q", stdout)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	sess := newSession(t, true)

	cmd := &commands.WhoamiCmd{}
	stdout, _, code := runCommandWithSession(t, cmd, sess, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "alice <alice@example.com>") {
		t.Errorf("expected user identity, got %q", stdout)
	}
	if !strings.Contains(stdout, "user id: 42") {
		t.Errorf("expected user id, got %q", stdout)
	}
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	sess := newSession(t, false)

	cmd := &commands.WhoamiCmd{}
	_, stderr, code := runCommandWithSession(t, cmd, sess, nil, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Errorf("expected not logged in error, got %q", stderr)
	}
}

// Tests for backend failure handling
func TestListCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = service.ErrFetchFailed

	cmd := &commands.ListCmd{}
	cmd.SetFilter("all")
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "failed to fetch tasks") {
		t.Errorf("expected fetch error, got %q", stderr)
	}
}

func TestDoneCommand_NotAuthenticated(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", false, service.PriorityMedium)
	svc.UpdateErr = service.ErrNotAuthenticated

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Errorf("expected auth error, got %q", stderr)
	}
}
