// Package prompt reads the interactive run tokens (reporting period,
// forecast version) from the terminal. Tokens are used verbatim in output
// file names; non-empty is the only validation.
package prompt

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// Ask prompts until the user enters a non-empty line. The label should
// include an example, e.g. `period (e.g. '2023-12')`.
func Ask(label string) (string, error) {
	rl, err := readline.New(fmt.Sprintf("%s: ", label))
	if err != nil {
		return "", fmt.Errorf("could not open terminal prompt: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return "", fmt.Errorf("prompt for %s aborted: %w", label, err)
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		fmt.Println("A value is required.")
	}
}

// Resolve returns the flag value when set, otherwise prompts for it.
func Resolve(flagValue, label string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return strings.TrimSpace(flagValue), nil
	}
	return Ask(label)
}
