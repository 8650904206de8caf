package ports

import "os/exec"

// Composer defines the interface for writing task text in an external editor
type Composer interface {
	// NewDraft creates a scratch file seeded with initial text and returns its path
	NewDraft(initial string) (string, error)

	// Command returns an exec.Cmd for editing the draft.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// ReadDraft returns the edited text and removes the scratch file
	ReadDraft(path string) (string, error)
}
