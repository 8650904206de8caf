package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"tododapp/internal/ports"
)

const draftHeader = "# Write the task below. Lines starting with '#' are ignored.\n"

// Composer implements ports.Composer using the user's $EDITOR
type Composer struct {
	dir string
}

// Ensure Composer implements ports.Composer
var _ ports.Composer = (*Composer)(nil)

// NewComposer creates a composer writing drafts to the system temp directory
func NewComposer() *Composer {
	return &Composer{dir: os.TempDir()}
}

// NewDraft creates a scratch file seeded with initial text
func (c *Composer) NewDraft(initial string) (string, error) {
	f, err := os.CreateTemp(c.dir, "todo-task-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(draftHeader + initial); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Name(), nil
}

// Command returns an exec.Cmd for editing a draft.
// This is useful for integrating with bubbletea's ExecProcess
func (c *Composer) Command(path string) (*exec.Cmd, error) {
	editor := findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// ReadDraft returns the edited text without comment lines and removes the draft
func (c *Composer) ReadDraft(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	return stripComments(string(data)), nil
}

func stripComments(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// findEditor returns the editor to use
func findEditor() string {
	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
