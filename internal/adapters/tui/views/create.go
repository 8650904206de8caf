package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tododapp/internal/adapters/tui/styles"
	"tododapp/internal/application"
)

// CreateKeyMap defines key bindings for the create view
type CreateKeyMap struct {
	Submit  key.Binding
	Compose key.Binding
	Cancel  key.Binding
}

var CreateKeys = CreateKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add task"),
	),
	Compose: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "write in $EDITOR"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// CreateModel is the model for the new-task view
type CreateModel struct {
	ViewState
	input textinput.Model
	keys  CreateKeyMap
}

// NewCreateModel creates a new create view model
func NewCreateModel(canEditor bool) *CreateModel {
	input := textinput.New()
	input.Placeholder = "Enter new task"
	input.CharLimit = application.MaxContentLength

	keys := CreateKeys
	keys.Compose.SetEnabled(canEditor)

	return &CreateModel{
		input: input,
		keys:  keys,
	}
}

// Reset clears the input and focuses it
func (m *CreateModel) Reset() {
	m.ClearMessage()
	m.input.SetValue("")
	m.input.Focus()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.input.Width = max(msg.Width-10, 20)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, func() tea.Msg { return SwitchToTasksMsg{} }

		case key.Matches(msg, m.keys.Compose):
			initial := m.input.Value()
			return m, func() tea.Msg { return ComposeMsg{Initial: initial} }

		case key.Matches(msg, m.keys.Submit):
			content := m.input.Value()
			if err := application.ValidateContent(content); err != nil {
				m.SetError(err)
				return m, nil
			}
			return m, func() tea.Msg { return CreateTaskMsg{Content: content} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the create view
func (m *CreateModel) View() string {
	return NewViewBuilder().
		Title("New Task").
		Subtitle("The text is pinned to IPFS, then its CID is recorded on-chain.").
		Line(styles.InputLabel.Render("Task:")).
		Line(styles.InputFocused.Render(m.input.View())).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(m.keys.Submit, m.keys.Compose, m.keys.Cancel).
		String()
}
