package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tododapp/internal/adapters/tui/styles"
	"tododapp/internal/application"
	"tododapp/internal/application/session"
)

// ConnectKeyMap defines key bindings for the connect view
type ConnectKeyMap struct {
	Connect key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

var ConnectKeys = ConnectKeyMap{
	Connect: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "connect wallet"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ConnectModel is shown until a wallet session exists
type ConnectModel struct {
	ViewState
	network         string
	walletAvailable bool
	connecting      bool
	unavailable     error // Last attempt reached no usable wallet
	status          session.Status
	spinner         spinner.Model
}

// NewConnectModel creates a connect view for the given network
func NewConnectModel(network string, walletAvailable bool) *ConnectModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner
	return &ConnectModel{
		network:         network,
		walletAvailable: walletAvailable,
		spinner:         s,
	}
}

// SetStatus updates the session state shown by the view
func (m *ConnectModel) SetStatus(st session.Status) {
	m.status = st
}

// SetConnecting marks a connection attempt as running
func (m *ConnectModel) SetConnecting(connecting bool) {
	m.connecting = connecting
}

// ConnectFailed records a failed attempt. A wallet that cannot serve a
// session at all gets the blocking notice; anything else is a message line.
func (m *ConnectModel) ConnectFailed(err error) {
	m.connecting = false
	if application.IsSessionFatal(err) {
		m.unavailable = err
		m.ClearMessage()
		return
	}
	m.unavailable = nil
	m.SetError(err)
}

// Connecting reports whether a connection attempt is running
func (m *ConnectModel) Connecting() bool {
	return m.connecting
}

// Init initializes the connect view
func (m *ConnectModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the connect view
func (m *ConnectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ConnectKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ConnectKeys.Dismiss):
			if m.status.NetworkError != nil {
				return m, func() tea.Msg { return DismissErrorMsg{} }
			}

		case key.Matches(msg, ConnectKeys.Connect):
			if !m.walletAvailable || m.connecting {
				return m, nil
			}
			m.ClearMessage()
			m.unavailable = nil
			m.connecting = true
			return m, func() tea.Msg { return ConnectMsg{} }
		}
	}

	return m, nil
}

// View renders the connect view
func (m *ConnectModel) View() string {
	network := lipgloss.NewStyle().Foreground(styles.NetworkColor(m.network)).Render(m.network)

	v := NewViewBuilder().
		Title("Todo").
		Line(RenderLabelValue("Network", network)).
		BlankLine()

	if m.status.NetworkError != nil {
		v.Banner(ErrorText(m.status.NetworkError), ConnectKeys.Dismiss)
	}

	switch {
	case !m.walletAvailable:
		v.Line(styles.WarningBanner.Render("No wallet detected")).
			BlankLine().
			Muted("Start a wallet that exposes a JSON-RPC endpoint and set wallet_url").
			Muted("in the config file, or TODO_WALLET_URL in the environment.").
			BlankLine().
			Help(ConnectKeys.Quit)
		return v.String()

	case m.unavailable != nil:
		v.Line(styles.WarningBanner.Render("Wallet unavailable")).
			Muted(ErrorText(m.unavailable)).
			Muted("Unlock the wallet or check wallet_url, then press enter to retry.").
			BlankLine()

	case m.connecting:
		v.Line(m.spinner.View() + " Waiting for the wallet to approve the connection...").
			BlankLine()

	default:
		v.Muted("Connect a wallet account to load your tasks.").
			BlankLine()
	}

	dismiss := ConnectKeys.Dismiss
	dismiss.SetEnabled(m.status.NetworkError != nil)

	return v.Message(m.Message, m.MessageErr).
		Help(ConnectKeys.Connect, dismiss, ConnectKeys.Quit).
		String()
}
