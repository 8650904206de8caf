package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"tododapp/internal/ports"
)

// Opener implements ports.URLOpener using the platform's URL handler
type Opener struct {
	goos string
}

// Ensure Opener implements URLOpener
var _ ports.URLOpener = (*Opener)(nil)

// NewOpener creates a new browser opener for the running platform
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// OpenURL opens an http(s) URL in the default browser
func (o *Opener) OpenURL(rawURL string) error {
	cmd, err := o.command(rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func (o *Opener) command(rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("refusing to open non-http URL: %s", rawURL)
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", rawURL), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
