package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/satish1373/automation-pipeline-demo/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question and reports whether the user agreed.
// Anything but "y" or "yes" counts as no, including EOF.
func ConfirmPrompt(out io.Writer, reader *bufio.Reader, question string) (bool, error) {
	fmt.Fprint(out, lipgloss.BlueSky.Render(question+" (y/N): "))

	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
