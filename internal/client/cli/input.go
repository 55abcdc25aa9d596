package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Seams for tests; the real implementations touch the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the descriptor checked for a terminal before reading passwords.
	fd int
}

func NewPrompter(in io.Reader, out io.Writer, fd int) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// ReadLine reads one line without a prompt. io.EOF is returned only when
// nothing was read.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) Text(prompt string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
		return "", err
	}
	return p.ReadLine()
}

// Password reads without echo on a terminal and falls back to a plain line
// otherwise (pipes, tests). The caller wipes the result.
func (p *Prompter) Password(prompt string) ([]byte, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", prompt); err != nil {
		return nil, err
	}
	if isTerminal(p.fd) {
		pw, err := readPassword(p.fd)
		fmt.Fprintln(p.out)
		return pw, err
	}
	line, err := p.ReadLine()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

func (p *Prompter) Bool(prompt string) (bool, error) {
	s, err := p.Text(prompt + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) Int(prompt string) (int, error) {
	s, err := p.Text(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

func (p *Prompter) Float(prompt string) (float64, error) {
	s, err := p.Text(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}
