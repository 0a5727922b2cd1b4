package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/afevis/modcheck/internal/ports"
)

// Prompter implements ports.UserPrompter over stdio. The native game patch
// shows a modal message box; the CLI equivalent blocks on stdin, which is
// acceptable since the pass runs during startup, not gameplay.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm shows the warning and blocks until the user answers yes or no.
func (p *Prompter) Confirm(message, title string) (bool, error) {
	fmt.Fprintf(p.out, "\n⚠️  %s\n\n%s\n", title, message)
	fmt.Fprint(p.out, "[y/N]: ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

var _ ports.UserPrompter = (*Prompter)(nil)
