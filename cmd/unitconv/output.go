package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

func isTerminal(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// writeHeading prints a styled title when writing to a terminal and nothing otherwise,
// so piped table output stays machine readable.
func writeHeading(writer io.Writer, title string) {
	if !isTerminal(writer) {
		return
	}
	fmt.Fprintln(writer, headingStyle.Render(title))
}

func writeJSON(writer io.Writer, payload any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
