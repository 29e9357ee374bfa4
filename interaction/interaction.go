package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter reads line based answers from in and writes prompts to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter, nil arguments fall back to stdin and stdout
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

// readLine prints label and returns the answer without its line ending.
// A final line without newline is still returned; io.EOF is only reported
// when nothing was read.
func (p *Prompter) readLine(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Required asks until a non-blank answer is given. Blank answers print
// emptyMessage and ask again with retryLabel.
func (p *Prompter) Required(label, retryLabel, emptyMessage string) (string, error) {
	answer, err := p.readLine(label)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)

	for answer == "" {
		_, _ = fmt.Fprintln(p.out, emptyMessage)

		answer, err = p.readLine(retryLabel)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
	}

	return answer, nil
}

// Optional returns the trimmed answer, which may be empty
func (p *Prompter) Optional(label string) (string, error) {
	answer, err := p.readLine(label)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm returns true only when the lower-cased answer is exactly "y".
// A closed input counts as no.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.readLine(label)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return strings.ToLower(answer) == "y", nil
}
