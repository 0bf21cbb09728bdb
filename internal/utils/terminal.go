package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptChoice prints the numbered choices to out and reads a selection from in.
// An empty answer selects defaultIdx. Returns the chosen index.
func PromptChoice(in io.Reader, out io.Writer, prompt string, choices []string, defaultIdx int) (int, error) {
	if len(choices) == 0 {
		return -1, fmt.Errorf("nothing to choose from")
	}

	for i, choice := range choices {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %d) %s\n", marker, i+1, choice)
	}
	fmt.Fprintf(out, "%s [%d]: ", prompt, defaultIdx+1)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return -1, fmt.Errorf("failed to read selection: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultIdx, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(choices) {
		return -1, fmt.Errorf("invalid selection %q: enter a number between 1 and %d", line, len(choices))
	}
	return n - 1, nil
}
