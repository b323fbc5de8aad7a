package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// PhoneInput supplies the operator's phone number at capture time.
type PhoneInput interface {
	Phone() string
}

// StaticPhone is a phone number fixed up front, e.g. from a flag.
type StaticPhone string

func (p StaticPhone) Phone() string {
	return string(p)
}

// PromptPhone asks for the phone number on every capture.
type PromptPhone struct {
	In  *bufio.Reader
	Out io.Writer
}

// Phone prints a prompt and reads one line. Read errors yield an empty number.
func (p PromptPhone) Phone() string {
	fmt.Fprint(p.Out, "Phone number: ")
	line, err := p.In.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// Notifier shows an outcome to the operator.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// TerminalNotifier prints the message and blocks until the operator presses Enter.
type TerminalNotifier struct {
	In  *bufio.Reader
	Out io.Writer
}

func (n TerminalNotifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(n.Out, "\n  %s\n  Press Enter to continue...", message)
	if _, err := n.In.ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("waiting for acknowledgment: %w", err)
	}
	return nil
}

// PrintNotifier prints the message without waiting.
type PrintNotifier struct {
	Out io.Writer
}

func (n PrintNotifier) Notify(_ context.Context, message string) error {
	_, err := fmt.Fprintln(n.Out, message)
	return err
}
