// Package console implements the line-oriented prompt/response surface.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrClosed is returned once the input stream is exhausted
var ErrClosed = errors.New("console input closed")

// Printer renders text to the operator
type Printer interface {
	Print(msg string)
	Printf(format string, args ...any)
}

// Console reads operator input line by line and prints responses
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	secretFd int // -1 when the input is not a terminal
}

// New creates a console over arbitrary streams
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		secretFd: -1,
	}
}

// NewTerminal creates a console over a file, enabling hidden password
// entry when the file is a terminal
func NewTerminal(in *os.File, out io.Writer) *Console {
	c := New(in, out)
	if isatty.IsTerminal(in.Fd()) {
		c.secretFd = int(in.Fd())
	}
	return c
}

// Print writes a line
func (c *Console) Print(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Printf writes a formatted line
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
	fmt.Fprintln(c.out)
}

// Prompt prints msg and reads one trimmed line
func (c *Console) Prompt(msg string) (string, error) {
	c.Print(msg)
	return c.readLine()
}

// Read prompts until accept approves the input, printing errMsg after each
// rejected line
func (c *Console) Read(prompt, errMsg string, accept func(string) bool) (string, error) {
	return c.read(prompt, errMsg, accept, c.readLine)
}

// ReadSecret is Read without echoing the input when the console is a terminal
func (c *Console) ReadSecret(prompt, errMsg string, accept func(string) bool) (string, error) {
	if c.secretFd < 0 {
		return c.Read(prompt, errMsg, accept)
	}
	return c.read(prompt, errMsg, accept, c.readSecret)
}

func (c *Console) read(prompt, errMsg string, accept func(string) bool, next func() (string, error)) (string, error) {
	for {
		c.Print(prompt)
		line, err := next()
		if err != nil {
			return "", err
		}
		if safeAccept(accept, line) {
			return line, nil
		}
		c.Print(errMsg)
		c.Print("")
	}
}

// safeAccept treats a panicking predicate as a rejection
func safeAccept(accept func(string) bool, line string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return accept(line)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrClosed
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("failed to read console input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) readSecret() (string, error) {
	b, err := term.ReadPassword(c.secretFd)
	fmt.Fprintln(c.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrClosed
		}
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
