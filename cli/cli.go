// Package cli provides the line REPL and meta-command dispatch for the
// lifequest engine.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/nathoo/lifequest/engine"
	"github.com/nathoo/lifequest/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the session (daily check and overdue sweep), then loops:
// prompt, input, dispatch, output. It returns when input ends or on /quit.
func (c *CLI) Run(ctx context.Context) error {
	start, err := c.Engine.StartSession(ctx)
	if err != nil {
		return err
	}
	c.printResult(start)
	c.printLine(c.Engine.FullTitle())
	c.printSystem("Type help for commands, /help for system commands.")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(ctx, input) {
				return nil
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result, err := c.Engine.Step(ctx, input)
		c.printResult(result)
		if err != nil {
			c.printSystem(fmt.Sprintf("Error: %v", err))
		}
		if c.Trace {
			c.printTrace(result)
		}
	}
	return scanner.Err()
}

// handleMeta dispatches meta-commands. Returns true if the session should end.
func (c *CLI) handleMeta(ctx context.Context, input string) bool {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		if err := c.Engine.Save(ctx); err != nil {
			c.printSystem(fmt.Sprintf("Save failed: %v", err))
			return false
		}
		c.printSystem("Progress saved.")

	case "/load":
		if err := c.Engine.Load(ctx); err != nil {
			c.printSystem(fmt.Sprintf("Load failed: %v", err))
			return false
		}
		c.printSystem("Progress reloaded.")
		c.printLines(c.Engine.StatusLines())

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

func (c *CLI) cmdHelp() {
	c.printLines([]string{
		"System:",
		"  /save   Save progress now",
		"  /load   Reload progress from storage",
		"  /quit   Exit",
		"  /help   Show this help",
		"  /state  Debug: dump the player record",
		"  /trace  Toggle event trace output",
		"",
		"Game commands:",
	})
	for _, line := range engine.HelpLines() {
		c.printLine("  " + line)
	}
	c.printLine("  again (g)  Repeat your last command")
}

func (c *CLI) cmdState() {
	p := c.Engine.Player
	c.printSystem(fmt.Sprintf("XP: %d  Coins: %d  Corruption: %d", p.XP, p.Coins, p.Corruption))
	c.printSystem(fmt.Sprintf("Title: %s  Transcendences: %d", p.Title, p.TranscendenceCount))
	c.printSystem(fmt.Sprintf("Quests: %d  Gear: %d  Pets: %v", len(p.Quests), len(p.Inventory), p.Pets))
	c.printSystem(fmt.Sprintf("Last reset: %s  Streak: %d  Punishment sum: %d",
		p.LastDailyResetDate, p.DailyStreak, p.PunishmentSum))
	if len(p.Achievements) > 0 {
		c.printSystem(fmt.Sprintf("Achievements: %v", p.Achievements))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
	for _, e := range result.Events {
		keys := slices.Sorted(maps.Keys(e.Data))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Data[k]))
		}
		c.printSystem(fmt.Sprintf("[trace]   %s %s", e.Type, strings.Join(parts, " ")))
	}
}

func (c *CLI) printResult(result types.Result) {
	c.printLines(result.Output)
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
