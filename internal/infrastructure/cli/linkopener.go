package cli

import (
	"os/exec"
	"runtime"

	"github.com/afevis/modcheck/internal/ports"
)

// LinkOpener launches remediation URLs with the platform browser.
// Best-effort: failures are logged at debug level and never surfaced.
type LinkOpener struct {
	log ports.Logger
}

// NewLinkOpener builds the browser launcher.
func NewLinkOpener(log ports.Logger) *LinkOpener {
	return &LinkOpener{log: log}
}

// Open fires off the URL and does not wait for the browser.
func (l *LinkOpener) Open(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil && l.log != nil {
		l.log.Debug("could not open link", map[string]interface{}{"url": url, "error": err.Error()})
	}
}

var _ ports.LinkOpener = (*LinkOpener)(nil)
