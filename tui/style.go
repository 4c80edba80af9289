package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusCorrupt = lipgloss.NewStyle().
				Background(lipgloss.Color("52")).
				Foreground(lipgloss.Color("252")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	stylePenalty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleQuote = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Italic(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindHeading
	kindReward
	kindPenalty
	kindQuote
	kindSystem
	kindError
	kindTrace
)

var (
	errorPrefixes = []string{
		"Not enough", "No ", "Invalid", "I don't know", "Which do you mean",
		"You don't", "You can't", "Unknown",
	}
	rewardMarkers = []string{
		"You earned", "Gained", "completed!", "Level up", "unlocked", "Achievement", "evolved",
	}
	penaltyMarkers = []string{
		"lost", "Lost", "Punishment", "corruption", "Corruption", "overdue", "reset",
	}
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case hasAnyPrefix(line, errorPrefixes):
		return kindError
	case strings.HasPrefix(strings.TrimSpace(line), `"`):
		return kindQuote
	case strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " "):
		return kindHeading
	case containsAny(line, rewardMarkers):
		return kindReward
	case containsAny(line, penaltyMarkers):
		return kindPenalty
	default:
		return kindPlain
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeading:
		return styleHeading.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindPenalty:
		return stylePenalty.Render(line)
	case kindQuote:
		return styleQuote.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return stylePlain.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
