// Package term implements the portal's terminal interface: a router that
// walks the page surface and per-page handlers that prompt, render, and call
// into the application layer.
package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/feehub/student-fee-portal/internal/domain/session"
)

// Terminal is the I/O surface handed to every page handler for one render.
// It carries the session loaded at navigation time so handlers never reach
// into storage themselves.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// Session is the identity in effect for this page render. Zero when no
	// one is signed in.
	Session session.Session
}

// NewTerminal wraps the given reader and writer.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt prints a label and reads one trimmed line.
func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Println writes one line.
func (t *Terminal) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}

// Printf writes a formatted string.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Divider prints a section divider.
func (t *Terminal) Divider() {
	fmt.Fprintln(t.out, strings.Repeat("─", 60))
}
