package views

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tododapp/internal/application"
	"tododapp/internal/application/controller"
	"tododapp/internal/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testSnapshot() controller.Snapshot {
	return controller.Snapshot{
		Session: domain.Session{Account: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", Network: "localhost"},
		Active:  true,
		Tasks: []controller.TaskView{
			{Task: domain.Task{Index: 0, ContentAddress: "bafkreia", IsCompleted: true}, Text: "Buy milk", ContentState: domain.ContentResolved},
			{Task: domain.Task{Index: 1, ContentAddress: "bafkreib"}, Text: "Walk dog", ContentState: domain.ContentResolved},
		},
	}
}

func TestTaskListModel_KeyAvailability(t *testing.T) {
	tests := []struct {
		name         string
		busy         bool
		cursor       int
		wantComplete bool
		wantDelete   bool
		wantNew      bool
	}{
		{name: "completed task", cursor: 0, wantComplete: false, wantDelete: true, wantNew: true},
		{name: "open task", cursor: 1, wantComplete: true, wantDelete: true, wantNew: true},
		{name: "busy", busy: true, cursor: 1, wantComplete: false, wantDelete: false, wantNew: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTaskListModel(true)
			snap := testSnapshot()
			if tt.busy {
				snap.Pending = &domain.Pending{Kind: domain.OpCreate}
			}
			m.SetSnapshot(snap)
			for i := 0; i < tt.cursor; i++ {
				m.Update(runeKey("j"))
			}

			keys := m.Keys()
			if keys.Complete.Enabled() != tt.wantComplete {
				t.Errorf("complete enabled = %v, want %v", keys.Complete.Enabled(), tt.wantComplete)
			}
			if keys.Delete.Enabled() != tt.wantDelete {
				t.Errorf("delete enabled = %v, want %v", keys.Delete.Enabled(), tt.wantDelete)
			}
			if keys.New.Enabled() != tt.wantNew {
				t.Errorf("new enabled = %v, want %v", keys.New.Enabled(), tt.wantNew)
			}
		})
	}
}

func TestTaskListModel_Intents(t *testing.T) {
	m := NewTaskListModel(false)
	m.SetSnapshot(testSnapshot())
	m.Update(runeKey("j"))

	_, cmd := m.Update(runeKey("c"))
	if cmd == nil {
		t.Fatal("expected a command for complete")
	}
	if got, ok := cmd().(CompleteTaskMsg); !ok || got.Index != 1 {
		t.Errorf("expected CompleteTaskMsg{1}, got %#v", cmd())
	}

	_, cmd = m.Update(runeKey("d"))
	got, ok := cmd().(SwitchToDeleteMsg)
	if !ok || got.Task.Index != 1 || got.Task.Text != "Walk dog" {
		t.Errorf("expected delete confirmation for task 1, got %#v", cmd())
	}

	_, cmd = m.Update(runeKey("y"))
	if got, ok := cmd().(CopyAddressMsg); !ok || got.Address != "bafkreib" {
		t.Errorf("expected CopyAddressMsg for bafkreib, got %#v", cmd())
	}

	// editor disabled
	if _, cmd = m.Update(runeKey("e")); cmd != nil {
		t.Errorf("expected no command when no editor is available")
	}
}

func TestTaskListModel_CompletedTaskIgnoresComplete(t *testing.T) {
	m := NewTaskListModel(false)
	m.SetSnapshot(testSnapshot())

	if _, cmd := m.Update(runeKey("c")); cmd != nil {
		t.Errorf("expected no command for an already completed task, got %#v", cmd())
	}
}

func TestTaskListModel_View(t *testing.T) {
	m := NewTaskListModel(false)
	snap := testSnapshot()
	snap.LastError = &application.TransactionError{Tx: "0xabc", Reason: "execution reverted"}
	snap.Pending = &domain.Pending{Kind: domain.OpComplete, Index: 1, TxHandle: "0x1234567890abcdef1234"}
	m.SetSnapshot(snap)

	view := m.View()
	for _, want := range []string{"Buy milk", "Walk dog", "bafkreia", "execution reverted", "complete #1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestCreateModel_Submit(t *testing.T) {
	m := NewCreateModel(false)
	m.Reset()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Errorf("expected empty content to be refused locally")
	}
	if !m.MessageErr {
		t.Errorf("expected an error message for empty content")
	}

	m.input.SetValue("Buy milk")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if got, ok := cmd().(CreateTaskMsg); !ok || got.Content != "Buy milk" {
		t.Errorf("expected CreateTaskMsg, got %#v", cmd())
	}
}

func TestDeleteModel_Confirm(t *testing.T) {
	m := NewDeleteModel()
	m.SetTarget(controller.TaskView{Task: domain.Task{Index: 4}, Text: "Walk dog"})

	_, cmd := m.Update(runeKey("y"))
	if got, ok := cmd().(DeleteTaskMsg); !ok || got.Index != 4 {
		t.Errorf("expected DeleteTaskMsg{4}, got %#v", cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SwitchToTasksMsg); !ok {
		t.Errorf("expected cancel to return to the task list")
	}
}

func TestSetError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
		want    string
	}{
		{"rejected", application.ErrUserRejected, false, "rejected"},
		{"busy", application.ErrBusy, true, "still in progress"},
		{"wallet", application.ErrWalletUnavailable, true, "Wallet:"},
		{"transaction", &application.TransactionError{Tx: "0x1", Reason: "execution reverted"}, true, "Transaction failed: execution reverted"},
		{"other", errors.New("boom"), true, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ViewState
			s.SetError(tt.err)
			if s.MessageErr != tt.wantErr {
				t.Errorf("MessageErr = %v, want %v", s.MessageErr, tt.wantErr)
			}
			if !strings.Contains(s.Message, tt.want) {
				t.Errorf("Message = %q, want it to contain %q", s.Message, tt.want)
			}
		})
	}
}

func TestConnectModel_ConnectFailed(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNotice  bool
		wantMessage string
	}{
		{"wallet unavailable", fmt.Errorf("failed to connect wallet: %w", application.ErrWalletUnavailable), true, ""},
		{"rejected", application.ErrUserRejected, false, "rejected"},
		{"switch unsupported", application.ErrSwitchUnsupported, false, "Network"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConnectModel("localhost", true)
			m.SetConnecting(true)
			m.ConnectFailed(tt.err)

			if m.Connecting() {
				t.Errorf("expected the attempt to be over")
			}
			view := m.View()
			if got := strings.Contains(view, "Wallet unavailable"); got != tt.wantNotice {
				t.Errorf("notice shown = %v, want %v:\n%s", got, tt.wantNotice, view)
			}
			if !strings.Contains(m.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want it to contain %q", m.Message, tt.wantMessage)
			}
		})
	}
}

func TestConnectModel_RetryClearsNotice(t *testing.T) {
	m := NewConnectModel("localhost", true)
	m.ConnectFailed(application.ErrWalletUnavailable)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected enter to retry")
	}
	if _, ok := cmd().(ConnectMsg); !ok {
		t.Errorf("expected a connect intent")
	}
	if strings.Contains(m.View(), "Wallet unavailable") {
		t.Errorf("expected the notice cleared while retrying")
	}
}
