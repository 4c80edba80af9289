package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	iconError = "✖"
	iconInfo  = "•"
)

var (
	cAccent = lipgloss.Color("205")
	cGood   = lipgloss.Color("42")
	cBad    = lipgloss.Color("196")
	cMuted  = lipgloss.Color("244")

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	styleGood  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	styleBad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	styleMuted = lipgloss.NewStyle().Foreground(cMuted)
)

// printResult writes engine output, tinting the first line by outcome.
func printResult(w io.Writer, ok bool, lines []string) {
	for i, line := range lines {
		switch {
		case i == 0 && ok:
			fmt.Fprintln(w, styleGood.Render(line))
		case i == 0:
			fmt.Fprintln(w, styleBad.Render(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}

// printView writes a listing under a heading.
func printView(w io.Writer, heading string, lines []string) {
	fmt.Fprintln(w, styleTitle.Render(heading))
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
