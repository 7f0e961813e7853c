// Package ui provides terminal output styling for the CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	stylePrompt   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleModel    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleThinking = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarn     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleUsage    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleName     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func Prompt(msg string) string   { return stylePrompt.Render(msg) }
func Model(msg string) string    { return styleModel.Render(msg) }
func Thinking(msg string) string { return styleThinking.Render(msg) }
func Error(msg string) string    { return styleError.Render(msg) }
func Warn(msg string) string     { return styleWarn.Render(msg) }
func Name(msg string) string     { return styleName.Render(msg) }

// Usage formats a token usage summary line.
func Usage(prompt, completion, total int) string {
	return styleUsage.Render(fmt.Sprintf("tokens: %d prompt + %d completion = %d total", prompt, completion, total))
}
