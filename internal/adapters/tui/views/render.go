package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"tododapp/internal/adapters/tui/styles"
	"tododapp/internal/application/controller"
	"tododapp/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders the enabled key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderBanner renders a dismissible error banner
func RenderBanner(text string, dismiss key.Binding) string {
	if text == "" {
		return ""
	}
	return styles.ErrorBanner.Render(text + "  " + RenderKeyHelp(dismiss))
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// RenderTask renders one task line and its metadata line
func RenderTask(tv controller.TaskView, selected bool) string {
	check := styles.CheckOpen
	if tv.IsCompleted {
		check = styles.CheckDone
	}
	text := fmt.Sprintf("%s#%d %s", check, tv.Index, tv.Text)

	var line string
	switch {
	case selected:
		line = styles.TaskSelected.Render(text)
	case tv.ContentState == domain.ContentLoading:
		line = styles.TaskLoading.Render(text)
	case tv.ContentState == domain.ContentFailed:
		line = styles.TaskFailed.Render(text)
	case tv.IsCompleted:
		line = styles.TaskDone.Render(text)
	default:
		line = styles.TaskOpen.Render(text)
	}

	meta := fmt.Sprintf("%s · %s", tv.ContentAddress, tv.CreatedTime().Format(time.DateTime))
	return line + "\n" + styles.TaskMeta.Render(meta)
}

// RenderPending describes the in-flight operation next to the spinner frame
func RenderPending(frame string, p *domain.Pending) string {
	if p == nil {
		return ""
	}
	desc := "Waiting for wallet: " + p.Describe()
	if p.TxHandle != "" {
		desc = fmt.Sprintf("Waiting for confirmation: %s (tx %s)", p.Describe(), p.TxHandle.Short())
	}
	return styles.Spinner.Render(frame) + " " + desc
}

// RenderStatusBar renders the network label followed by status details
func RenderStatusBar(label string, details ...string) string {
	return styles.StatusBar.Render(
		styles.StatusKey.Render(label) + styles.StatusText.Render(strings.Join(details, " · ")),
	)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Banner adds an error banner if text is non-empty
func (v *ViewBuilder) Banner(text string, dismiss key.Binding) *ViewBuilder {
	if text == "" {
		return v
	}
	v.b.WriteString(RenderBanner(text, dismiss))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
