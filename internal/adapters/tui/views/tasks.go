package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tododapp/internal/adapters/tui/styles"
	"tododapp/internal/application/controller"
)

// linesPerTask is the height of one rendered task including its separator
const linesPerTask = 3

// TaskKeyMap defines key bindings for the task list
type TaskKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	New      key.Binding
	Compose  key.Binding
	Complete key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Open     key.Binding
	Refresh  key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var TaskKeys = TaskKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←/h", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→/l", "next page"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Compose: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editor"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy cid"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// TaskListModel is the main view: the task list of the connected account
type TaskListModel struct {
	ViewState
	keys      TaskKeyMap
	paginator *Paginator
	spinner   spinner.Model
	snapshot  controller.Snapshot
	canEditor bool
}

// NewTaskListModel creates the task list view
func NewTaskListModel(canEditor bool) *TaskListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	m := &TaskListModel{
		keys:      TaskKeys,
		paginator: NewPaginator(5),
		spinner:   s,
		canEditor: canEditor,
	}
	m.updateKeys()
	return m
}

// SetSnapshot replaces the state the list renders
func (m *TaskListModel) SetSnapshot(snap controller.Snapshot) {
	m.snapshot = snap
	m.paginator.SetTotal(len(snap.Tasks))
	m.updateKeys()
}

// Snapshot returns the state the list renders
func (m *TaskListModel) Snapshot() controller.Snapshot {
	return m.snapshot
}

// Selected returns the task under the cursor, or nil when the list is empty
func (m *TaskListModel) Selected() *controller.TaskView {
	if len(m.snapshot.Tasks) == 0 {
		return nil
	}
	tv := m.snapshot.Tasks[m.paginator.Cursor()]
	return &tv
}

// Keys returns the bindings with their current enabled state
func (m *TaskListModel) Keys() TaskKeyMap {
	return m.keys
}

// updateKeys enables actions that are valid for the selection and lifecycle state
func (m *TaskListModel) updateKeys() {
	sel := m.Selected()
	busy := m.snapshot.Busy()
	m.keys.New.SetEnabled(!busy)
	m.keys.Compose.SetEnabled(!busy && m.canEditor)
	m.keys.Complete.SetEnabled(!busy && sel != nil && !sel.IsCompleted)
	m.keys.Delete.SetEnabled(!busy && sel != nil)
	m.keys.Copy.SetEnabled(sel != nil)
	m.keys.Open.SetEnabled(sel != nil)
	m.keys.Dismiss.SetEnabled(m.snapshot.LastError != nil)
}

// Init initializes the task list
func (m *TaskListModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the task list
func (m *TaskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		// title, subtitle, banners, pager and help take roughly 12 lines
		m.paginator.SetPageSize(max((msg.Height-12)/linesPerTask, 1))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *TaskListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.paginator.CursorUp()
		m.updateKeys()

	case key.Matches(msg, m.keys.Down):
		m.paginator.CursorDown()
		m.updateKeys()

	case key.Matches(msg, m.keys.PrevPage):
		m.paginator.PrevPage()
		m.updateKeys()

	case key.Matches(msg, m.keys.NextPage):
		m.paginator.NextPage()
		m.updateKeys()

	case key.Matches(msg, m.keys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, m.keys.Refresh):
		m.ClearMessage()
		return func() tea.Msg { return RefreshMsg{} }

	case key.Matches(msg, m.keys.Dismiss):
		return func() tea.Msg { return DismissErrorMsg{} }

	case key.Matches(msg, m.keys.New):
		m.ClearMessage()
		return func() tea.Msg { return SwitchToCreateMsg{} }

	case key.Matches(msg, m.keys.Compose):
		m.ClearMessage()
		return func() tea.Msg { return ComposeMsg{} }
	}

	sel := m.Selected()
	if sel == nil {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Complete):
		m.ClearMessage()
		index := sel.Index
		return func() tea.Msg { return CompleteTaskMsg{Index: index} }

	case key.Matches(msg, m.keys.Delete):
		m.ClearMessage()
		task := *sel
		return func() tea.Msg { return SwitchToDeleteMsg{Task: task} }

	case key.Matches(msg, m.keys.Copy):
		addr := sel.ContentAddress
		return func() tea.Msg { return CopyAddressMsg{Address: addr} }

	case key.Matches(msg, m.keys.Open):
		addr := sel.ContentAddress
		return func() tea.Msg { return OpenAddressMsg{Address: addr} }
	}

	return nil
}

// View renders the task list
func (m *TaskListModel) View() string {
	snap := m.snapshot
	network := lipgloss.NewStyle().Foreground(styles.NetworkColor(snap.Session.Network)).Render(snap.Session.Network)

	v := NewViewBuilder().
		Title("Todo").
		Subtitle(fmt.Sprintf("%s on %s", snap.Session.ShortAccount(), network))

	if snap.LastError != nil {
		v.Banner(ErrorText(snap.LastError), m.keys.Dismiss)
	}

	if snap.Pending != nil {
		v.Line(RenderPending(m.spinner.View(), snap.Pending)).BlankLine()
	}

	switch {
	case len(snap.Tasks) == 0 && snap.RefreshedAt.IsZero():
		v.Line(m.spinner.View() + " Loading tasks...").BlankLine()
	case len(snap.Tasks) == 0:
		v.Muted("No tasks yet. Press n to add one.").BlankLine()
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(RenderTask(snap.Tasks[i], i == m.paginator.Cursor())).BlankLine()
		}
		if m.paginator.TotalPages() > 1 {
			v.Muted(fmt.Sprintf("Page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())).BlankLine()
		}
	}

	details := []string{fmt.Sprintf("chain %d", snap.Session.ChainID), fmt.Sprintf("%d tasks", len(snap.Tasks))}
	if !snap.RefreshedAt.IsZero() {
		details = append(details, "synced "+snap.RefreshedAt.Format(time.TimeOnly))
	}
	v.Line(RenderStatusBar(snap.Session.Network, details...)).BlankLine()

	return v.Message(m.Message, m.MessageErr).
		Help(
			m.keys.New,
			m.keys.Compose,
			m.keys.Complete,
			m.keys.Delete,
			m.keys.Copy,
			m.keys.Open,
			m.keys.Refresh,
			m.keys.Dismiss,
			m.keys.Help,
			m.keys.Quit,
		).
		String()
}
