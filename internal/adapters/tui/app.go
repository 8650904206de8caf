package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tododapp/internal/adapters/tui/views"
	"tododapp/internal/application"
	"tododapp/internal/application/commands"
	"tododapp/internal/ports"
)

// statusInterval is how often the views re-read controller state
const statusInterval = 200 * time.Millisecond

// ViewState represents the current view
type ViewState int

const (
	ViewConnect ViewState = iota
	ViewTasks
	ViewCreate
	ViewDelete
	ViewHelp
)

// Options wires the TUI to the application layer
type Options struct {
	Sync            commands.TaskSync
	Sessions        commands.Connector
	Composer        ports.Composer  // Optional
	Opener          ports.URLOpener // Optional
	Gateway         func(string) string
	Network         string
	WalletAvailable bool
}

// App is the main TUI application model
type App struct {
	ctx      context.Context
	sync     commands.TaskSync
	sessions commands.Connector
	composer ports.Composer
	opener   ports.URLOpener
	gateway  func(string) string

	state      ViewState
	connect    *views.ConnectModel
	tasks      *views.TaskListModel
	create     *views.CreateModel
	deleteView *views.DeleteModel
	help       *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ctx bounds every wallet and ledger call.
func NewApp(ctx context.Context, opts Options) *App {
	canEditor := opts.Composer != nil
	return &App{
		ctx:        ctx,
		sync:       opts.Sync,
		sessions:   opts.Sessions,
		composer:   opts.Composer,
		opener:     opts.Opener,
		gateway:    opts.Gateway,
		state:      ViewConnect,
		connect:    views.NewConnectModel(opts.Network, opts.WalletAvailable),
		tasks:      views.NewTaskListModel(canEditor),
		create:     views.NewCreateModel(canEditor),
		deleteView: views.NewDeleteModel(),
		help:       views.NewHelpModel(opts.Network),
	}
}

type statusTickMsg struct{}

func tickStatus() tea.Cmd {
	return tea.Tick(statusInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.connect.Init(),
		a.tasks.Init(),
		a.readStatus,
		tickStatus(),
	)
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.connect.Update(msg)
		a.tasks.Update(msg)
		a.create.Update(msg)
		a.deleteView.Update(msg)
		a.help.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case spinner.TickMsg:
		// both spinners keep ticking while their view is hidden
		_, connectCmd := a.connect.Update(msg)
		_, tasksCmd := a.tasks.Update(msg)
		return a, tea.Batch(connectCmd, tasksCmd)

	case statusTickMsg:
		return a, tea.Batch(a.readStatus, tickStatus())

	case views.StatusMsg:
		a.applyStatus(msg)
		return a, nil

	// View switching messages
	case views.SwitchToTasksMsg:
		a.state = ViewTasks
		return a, nil

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, a.create.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.deleteView.SetTarget(msg.Task)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Intents
	case views.ConnectMsg:
		return a, a.runConnect()

	case views.ConnectDoneMsg:
		a.connect.SetConnecting(false)
		if msg.Err != nil {
			a.connect.ConnectFailed(msg.Err)
			return a, nil
		}
		a.tasks.SetMessage(msg.Result.Message, false)
		return a, a.readStatus

	case views.CreateTaskMsg:
		a.state = ViewTasks
		return a, a.runMutation(commands.NewCreateTaskCommand(a.sync, msg.Content))

	case views.CompleteTaskMsg:
		return a, a.runMutation(commands.NewCompleteTaskCommand(a.sync, strconv.FormatUint(msg.Index, 10)))

	case views.DeleteTaskMsg:
		a.state = ViewTasks
		return a, a.runMutation(commands.NewDeleteTaskCommand(a.sync, strconv.FormatUint(msg.Index, 10)))

	case views.MutationDoneMsg:
		a.applyMutation(msg)
		return a, a.readStatus

	case views.RefreshMsg:
		return a, a.runRefresh()

	case views.DismissErrorMsg:
		_ = commands.NewDismissErrorCommand(a.sessions, a.sync).Execute(a.ctx)
		return a, a.readStatus

	case views.CopyAddressMsg:
		return a, copyAddress(msg.Address)

	case views.OpenAddressMsg:
		return a, a.openAddress(msg.Address)

	case views.ComposeMsg:
		a.state = ViewTasks
		return a, a.compose(msg.Initial)

	case draftFinishedMsg:
		return a, a.finishDraft(msg)

	case views.FlashMsg:
		a.currentState().SetMessage(msg.Text, msg.IsErr)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewConnect:
		_, cmd = a.connect.Update(msg)
	case ViewTasks:
		_, cmd = a.tasks.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewDelete:
		_, cmd = a.deleteView.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) readStatus() tea.Msg {
	res, _ := commands.NewStatusCommand(a.sessions, a.sync).Execute(a.ctx)
	return views.StatusMsg{Snapshot: res.Snapshot, Session: res.Session}
}

// applyStatus routes between the connect screen and the task screens as the
// session comes and goes
func (a *App) applyStatus(msg views.StatusMsg) {
	a.connect.SetStatus(msg.Session)

	if !msg.Session.Connected {
		if a.state != ViewConnect && a.state != ViewHelp {
			a.state = ViewConnect
		}
		return
	}

	a.tasks.SetSnapshot(msg.Snapshot)
	if a.state == ViewConnect {
		a.state = ViewTasks
	}
}

func (a *App) applyMutation(msg views.MutationDoneMsg) {
	if msg.Err != nil {
		// operation failures surface through the snapshot banner
		var vErr *application.ValidationError
		if errors.As(msg.Err, &vErr) || errors.Is(msg.Err, application.ErrBusy) || errors.Is(msg.Err, application.ErrNoSession) {
			a.tasks.SetError(msg.Err)
		}
		return
	}
	a.tasks.SetMessage(msg.Result.Message, false)
}

func (a *App) runConnect() tea.Cmd {
	ctx := a.ctx
	cmd := commands.NewConnectCommand(a.sessions)
	return func() tea.Msg {
		res, err := cmd.Execute(ctx)
		return views.ConnectDoneMsg{Result: res, Err: err}
	}
}

// mutation is implemented by the create, complete and delete commands
type mutation interface {
	Execute(ctx context.Context) (*commands.MutationResult, error)
}

func (a *App) runMutation(m mutation) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		res, err := m.Execute(ctx)
		return views.MutationDoneMsg{Result: res, Err: err}
	}
}

func (a *App) runRefresh() tea.Cmd {
	ctx := a.ctx
	cmd := commands.NewListTasksCommand(a.sync, true)
	return func() tea.Msg {
		if _, err := cmd.Execute(ctx); err != nil {
			return views.FlashMsg{Text: views.ErrorText(err), IsErr: true}
		}
		return views.FlashMsg{Text: "Reloaded"}
	}
}

func copyAddress(addr string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(addr); err != nil {
			return views.FlashMsg{Text: "Clipboard unavailable: " + err.Error(), IsErr: true}
		}
		return views.FlashMsg{Text: "Copied " + addr}
	}
}

func (a *App) openAddress(addr string) tea.Cmd {
	if a.opener == nil || a.gateway == nil {
		return nil
	}
	url := a.gateway(addr)
	return func() tea.Msg {
		if err := a.opener.OpenURL(url); err != nil {
			return views.FlashMsg{Text: err.Error(), IsErr: true}
		}
		return views.FlashMsg{Text: "Opened " + url}
	}
}

type draftFinishedMsg struct {
	path string
	err  error
}

func (a *App) compose(initial string) tea.Cmd {
	if a.composer == nil {
		return nil
	}

	path, err := a.composer.NewDraft(initial)
	if err != nil {
		return flash(err)
	}

	cmd, err := a.composer.Command(path)
	if err != nil {
		return flash(err)
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return draftFinishedMsg{path: path, err: err}
	})
}

func (a *App) finishDraft(msg draftFinishedMsg) tea.Cmd {
	content, err := a.composer.ReadDraft(msg.path)
	if msg.err != nil {
		return flash(msg.err)
	}
	if err != nil {
		return flash(err)
	}
	if content == "" {
		return func() tea.Msg { return views.FlashMsg{Text: "Empty task discarded"} }
	}
	return func() tea.Msg { return views.CreateTaskMsg{Content: content} }
}

func flash(err error) tea.Cmd {
	return func() tea.Msg {
		return views.FlashMsg{Text: err.Error(), IsErr: true}
	}
}

func (a *App) currentState() *views.ViewState {
	switch a.state {
	case ViewConnect:
		return &a.connect.ViewState
	case ViewCreate:
		return &a.create.ViewState
	case ViewDelete:
		return &a.deleteView.ViewState
	default:
		return &a.tasks.ViewState
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewConnect:
		return a.connect.View()
	case ViewCreate:
		return a.create.View()
	case ViewDelete:
		return a.deleteView.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.tasks.View()
	}
}
