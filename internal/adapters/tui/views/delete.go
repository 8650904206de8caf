package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"tododapp/internal/adapters/tui/styles"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel() *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.confirm,
			func() tea.Msg { return SwitchToTasksMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) confirm() tea.Msg {
	if m.Target == nil {
		return SwitchToTasksMsg{}
	}
	return DeleteTaskMsg{Index: m.Target.Index}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	return NewViewBuilder().
		Title("Delete Task").
		Line(RenderTargetInfo(m.Target, "Delete")).
		BlankLine().
		Muted("The task is removed from the ledger; its pinned content stays on IPFS.").
		Muted("Your wallet will ask you to sign the transaction.").
		BlankLine().
		Raw(styles.ErrorMsg.Render("This action cannot be undone! ")).
		Raw(RenderConfirmPrompt("Are you sure?")).
		String()
}
