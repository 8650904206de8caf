package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tododapp/internal/application"
	"tododapp/internal/application/controller"
	"tododapp/internal/application/session"
	"tododapp/internal/domain"
)

type fakeSync struct {
	snapshot   controller.Snapshot
	refreshErr error
	refreshed  int
	result     *controller.Result
	err        error
	created    []string
	completed  []uint64
	deleted    []uint64
	dismissed  bool
}

func (f *fakeSync) Snapshot() controller.Snapshot { return f.snapshot }

func (f *fakeSync) Refresh(ctx context.Context) error {
	f.refreshed++
	return f.refreshErr
}

func (f *fakeSync) CreateTask(ctx context.Context, text string) (*controller.Result, error) {
	f.created = append(f.created, text)
	return f.result, f.err
}

func (f *fakeSync) CompleteTask(ctx context.Context, index uint64) (*controller.Result, error) {
	f.completed = append(f.completed, index)
	return f.result, f.err
}

func (f *fakeSync) DeleteTask(ctx context.Context, index uint64) (*controller.Result, error) {
	f.deleted = append(f.deleted, index)
	return f.result, f.err
}

func (f *fakeSync) DismissError() { f.dismissed = true }

type fakeConnector struct {
	account   string
	err       error
	status    session.Status
	dismissed bool
}

func (f *fakeConnector) Connect(ctx context.Context) (string, error) { return f.account, f.err }
func (f *fakeConnector) Status() session.Status                      { return f.status }
func (f *fakeConnector) DismissNetworkError()                        { f.dismissed = true }

func applied(handle domain.TxHandle) *controller.Result {
	return &controller.Result{Outcome: domain.StateApplied, TxHandle: handle, ContentAddress: "bafkreinew"}
}

func TestCreateTaskCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		errMsg  string
	}{
		{name: "valid content", content: "Buy milk"},
		{name: "empty content", content: "", wantErr: true, errMsg: "task content is required"},
		{name: "whitespace only", content: " \t\n", wantErr: true, errMsg: "task content is required"},
		{name: "too long", content: strings.Repeat("x", application.MaxContentLength+1), wantErr: true, errMsg: "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateTaskCommand{Content: tt.content}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIndexCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		index   string
		wantErr bool
	}{
		{name: "zero", index: "0"},
		{name: "padded", index: " 12 "},
		{name: "empty", index: "", wantErr: true},
		{name: "negative", index: "-1", wantErr: true},
		{name: "trailing garbage", index: "3abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, cmd := range []interface{ Validate() error }{
				&CompleteTaskCommand{Index: tt.index},
				&DeleteTaskCommand{Index: tt.index},
			} {
				err := cmd.Validate()
				if (err != nil) != tt.wantErr {
					t.Errorf("%T: expected error %v, got %v", cmd, tt.wantErr, err)
				}
				var valErr *application.ValidationError
				if err != nil && !errors.As(err, &valErr) {
					t.Errorf("%T: expected ValidationError, got %T", cmd, err)
				}
			}
		})
	}
}

func TestCreateTaskCommand_Execute(t *testing.T) {
	sync := &fakeSync{result: applied("0x1234567890abcdef1234")}

	res, err := NewCreateTaskCommand(sync, "Buy milk").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(sync.created) != 1 || sync.created[0] != "Buy milk" {
		t.Errorf("expected one create with the text, got %v", sync.created)
	}
	if !strings.Contains(res.Message, "bafkreinew") || !strings.Contains(res.Message, "0x1234") {
		t.Errorf("unexpected message %q", res.Message)
	}
	if res.Rejected() {
		t.Errorf("expected not rejected")
	}
}

func TestCreateTaskCommand_InvalidNeverReachesController(t *testing.T) {
	sync := &fakeSync{}

	if _, err := NewCreateTaskCommand(sync, "  ").Execute(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if len(sync.created) != 0 {
		t.Errorf("expected no create, got %v", sync.created)
	}
}

func TestMutationCommands_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		result     *controller.Result
		err        error
		wantErr    error
		wantMsg    string
		wantReject bool
	}{
		{name: "applied", result: applied("0xabc"), wantMsg: "Completed task #2"},
		{name: "rejected", result: &controller.Result{Outcome: domain.StateRejected}, wantMsg: "rejected", wantReject: true},
		{name: "busy", err: application.ErrBusy, wantErr: application.ErrBusy},
		{name: "reverted", err: &application.TransactionError{Reason: "bad index"}, wantErr: application.ErrTransactionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sync := &fakeSync{result: tt.result, err: tt.err}

			res, err := NewCompleteTaskCommand(sync, "2").Execute(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.Contains(res.Message, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, res.Message)
			}
			if res.Rejected() != tt.wantReject {
				t.Errorf("expected rejected %v", tt.wantReject)
			}
			if len(sync.completed) != 1 || sync.completed[0] != 2 {
				t.Errorf("expected complete #2, got %v", sync.completed)
			}
		})
	}
}

func TestDeleteTaskCommand_Execute(t *testing.T) {
	sync := &fakeSync{result: applied("0xabc")}

	res, err := NewDeleteTaskCommand(sync, "0").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(sync.deleted) != 1 || sync.deleted[0] != 0 {
		t.Errorf("expected delete #0, got %v", sync.deleted)
	}
	if !strings.HasPrefix(res.Message, "Deleted task #0") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestListTasksCommand(t *testing.T) {
	sync := &fakeSync{snapshot: controller.Snapshot{Tasks: []controller.TaskView{
		{Task: domain.Task{Index: 0, ContentAddress: "Qm1"}, Text: "Buy milk"},
		{Task: domain.Task{Index: 1, ContentAddress: "Qm2", IsCompleted: true}, Text: "Walk dog"},
	}}}

	cmd := NewListTasksCommand(sync, true)
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if sync.refreshed != 1 {
		t.Errorf("expected one refresh, got %d", sync.refreshed)
	}
	if len(res.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(res.Tasks))
	}

	cmd.Pending = true
	res, err = cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(res.Tasks) != 1 || res.Tasks[0].Text != "Buy milk" {
		t.Errorf("expected only the open task, got %+v", res.Tasks)
	}
}

func TestListTasksCommand_RefreshError(t *testing.T) {
	sync := &fakeSync{refreshErr: &application.NetworkError{Op: "list tasks"}}

	if _, err := NewListTasksCommand(sync, true).Execute(context.Background()); !errors.Is(err, application.ErrNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestConnectCommand(t *testing.T) {
	conn := &fakeConnector{
		account: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		status:  session.Status{Connected: true, Session: domain.Session{Network: "localhost"}},
	}

	res, err := NewConnectCommand(conn).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Message != "Connected 0xf39F…2266 on localhost" {
		t.Errorf("unexpected message %q", res.Message)
	}

	conn.err = application.ErrWalletUnavailable
	if _, err := NewConnectCommand(conn).Execute(context.Background()); !errors.Is(err, application.ErrWalletUnavailable) {
		t.Errorf("expected ErrWalletUnavailable, got %v", err)
	}
}

func TestDismissErrorCommand(t *testing.T) {
	conn := &fakeConnector{}
	sync := &fakeSync{}

	if err := NewDismissErrorCommand(conn, sync).Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !conn.dismissed || !sync.dismissed {
		t.Errorf("expected both banners dismissed")
	}
}
