package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printItem(w io.Writer, text, note string) {
	if note == "" {
		fmt.Fprintf(w, "  %s\n", text)
		return
	}

	fmt.Fprintf(w, "  %s %s\n", text, mutedStyle.Render(note))
}

func printMessages(w io.Writer, label string, style lipgloss.Style, messages []string) {
	if len(messages) == 0 {
		return
	}

	fmt.Fprintln(w, style.Render(fmt.Sprintf("%s (%d):", label, len(messages))))

	for _, m := range messages {
		fmt.Fprintf(w, "  - %s\n", m)
	}
}
