package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// passphraseFlag registers --passphrase on cmd.
func passphraseFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVar(p, "passphrase", "", "Chain passphrase (prompted when omitted)")
}

// readPassphrase returns the --passphrase value when set, otherwise prompts.
// An empty passphrase is allowed.
func readPassphrase(cmd *cobra.Command, in *promptReader, value string, confirm bool) (string, error) {
	if cmd.Flags().Changed("passphrase") {
		return value, nil
	}

	pass, err := in.read("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	if confirm {
		again, err := in.read("Confirm passphrase: ")
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		if pass != again {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return pass, nil
}

// readPassword prompts for a key file password.
func readPassword(in *promptReader, confirm bool) ([]byte, error) {
	password, err := in.read("Key file password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("key file password must not be empty")
	}
	if confirm {
		again, err := in.read("Confirm password: ")
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		if password != again {
			return nil, fmt.Errorf("passwords do not match")
		}
	}
	return []byte(password), nil
}

// promptReader reads hidden input from a terminal, or plain lines when
// input is piped. Use one reader per command so piped lines are not lost
// to buffering.
type promptReader struct {
	in     io.Reader
	prompt io.Writer
	lines  *bufio.Reader
}

func newPromptReader(cmd *cobra.Command) *promptReader {
	return &promptReader{in: cmd.InOrStdin(), prompt: cmd.ErrOrStderr()}
}

func (p *promptReader) read(prompt string) (string, error) {
	fmt.Fprint(p.prompt, prompt)

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.prompt) // newline after hidden input
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if p.lines == nil {
		p.lines = bufio.NewReader(p.in)
	}
	line, err := p.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
