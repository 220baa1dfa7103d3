// Package reporter defines the structured output surface for motion-core
// commands. Core packages report decisions through the Reporter interface and
// never print directly, so the presentation layer stays swappable in tests.
package reporter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter receives user-facing messages from command pipelines.
type Reporter interface {
	Info(message string)
	Warn(message string)
	Error(message string)
	Blank()
}

// Confirmer asks the user a yes/no question. Implementations block until an
// answer is available.
type Confirmer interface {
	Confirm(prompt string, defaultYes bool) (bool, error)
}

// Console writes reporter messages to standard streams with status prefixes
// and reads confirmation answers from In.
type Console struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader

	reader *bufio.Reader
}

// NewConsole returns a Console bound to stdin/stdout/stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr, In: os.Stdin}
}

func (c *Console) Info(message string) {
	fmt.Fprintf(c.Out, "› %s\n", message)
}

func (c *Console) Warn(message string) {
	fmt.Fprintf(c.Out, "! %s\n", message)
}

func (c *Console) Error(message string) {
	fmt.Fprintf(c.Err, "✖ %s\n", message)
}

func (c *Console) Blank() {
	fmt.Fprintln(c.Out)
}

// Confirm prints the prompt and reads one line. An empty answer or EOF takes
// the default; anything other than a yes/no word also takes the default.
func (c *Console) Confirm(prompt string, defaultYes bool) (bool, error) {
	if c.reader == nil {
		in := c.In
		if in == nil {
			in = os.Stdin
		}
		c.reader = bufio.NewReader(in)
	}

	suffix := "(Y/n)"
	if !defaultYes {
		suffix = "(y/N)"
	}
	fmt.Fprintf(c.Out, "? %s %s ", prompt, suffix)

	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return defaultYes, nil
		}
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return defaultYes, nil
	}
}
