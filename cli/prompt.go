package cli

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/baobab-edu/peerreview-cli/core"
)

var (
	makeRawFunc      = term.MakeRaw      // mockable
	restoreTermFunc  = term.Restore      // mockable
	readPasswordFunc = term.ReadPassword // mockable
)

// Prompter is the cancellable input contract. Every step of a
// multi-step action goes through it, so a single Esc unwinds the whole
// composition without partial network effects.
type Prompter interface {
	// Line prints the label on its own line and reads the reply.
	Line(label string) core.Result[string]
	// Inline prints the label and reads the reply on the same line.
	Inline(label string) core.Result[string]
	// Password reads masked input. Not cancellable: it only appears in
	// the login flow, before any menu exists.
	Password(label string) (string, error)
}

// terminalPrompter reads the controlling terminal key by key so Esc
// can be told apart from an empty line.
type terminalPrompter struct {
	in  *os.File
	out io.Writer
}

func NewTerminalPrompter() Prompter {
	return &terminalPrompter{in: os.Stdin, out: os.Stdout}
}

func (p *terminalPrompter) Line(label string) core.Result[string] {
	fmt.Fprintln(p.out, label)
	return p.readCancellable()
}

func (p *terminalPrompter) Inline(label string) core.Result[string] {
	fmt.Fprint(p.out, label)
	return p.readCancellable()
}

func (p *terminalPrompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

const (
	keyEsc       = 0x1b
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyBackspace = 0x7f
	keyCtrlH     = 0x08
	keyCtrlC     = 0x03
)

// readCancellable collects a line in raw mode. Esc (or Ctrl-C) cancels;
// Enter accepts, possibly empty.
func (p *terminalPrompter) readCancellable() core.Result[string] {
	fd := int(p.in.Fd())
	state, err := makeRawFunc(fd)
	if err != nil {
		// not a terminal; fall back to a plain line read
		return p.readPlain()
	}
	defer restoreTermFunc(fd, state) //nolint:errcheck

	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := p.in.Read(buf)
		if err != nil || n == 0 {
			fmt.Fprint(p.out, "\r\n")
			return core.Ok(string(line))
		}
		switch buf[0] {
		case keyEsc, keyCtrlC:
			fmt.Fprint(p.out, "\r\n")
			return core.Cancel[string]()
		case keyEnter, keyNewline:
			fmt.Fprint(p.out, "\r\n")
			return core.Ok(string(line))
		case keyBackspace, keyCtrlH:
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(p.out, "\b \b")
			}
		default:
			line = append(line, buf[0])
			fmt.Fprint(p.out, string(buf[:1]))
		}
	}
}

func (p *terminalPrompter) readPlain() core.Result[string] {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := p.in.Read(buf)
		if err != nil || n == 0 {
			return core.Ok(string(line))
		}
		if buf[0] == keyNewline {
			return core.Ok(string(line))
		}
		if buf[0] != keyEnter {
			line = append(line, buf[0])
		}
	}
}
