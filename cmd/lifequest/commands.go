package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathoo/lifequest/cli"
	"github.com/nathoo/lifequest/engine"
	"github.com/nathoo/lifequest/tui"
)

// withApp opens the engine, runs the session start and hands over.
func withApp(cmd *cobra.Command, cfgPath func() string, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, cfgPath())
	if err != nil {
		return err
	}
	defer a.Close()

	start, err := a.engine.StartSession(ctx)
	if err != nil {
		return err
	}
	for _, line := range start.Output {
		fmt.Fprintln(cmd.OutOrStdout(), styleMuted.Render(iconInfo+" "+line))
	}
	return fn(ctx, a)
}

func newViewCmd(cfgPath func() string, use, short string, view func(*engine.Engine) []string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfgPath, func(_ context.Context, a *app) error {
				printView(cmd.OutOrStdout(), a.engine.FullTitle(), view(a.engine))
				return nil
			})
		},
	}
}

// newStepCmd runs one REPL verb with the arguments joined back into a line.
func newStepCmd(cfgPath func() string, use, short, verb string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return step(cmd, cfgPath, verb+" "+strings.Join(args, " "))
		},
	}
}

func step(cmd *cobra.Command, cfgPath func() string, line string) error {
	return withApp(cmd, cfgPath, func(ctx context.Context, a *app) error {
		res, err := a.engine.Step(ctx, strings.TrimSpace(line))
		printResult(cmd.OutOrStdout(), res.OK, res.Output)
		return err
	})
}

func newCompleteCmd(cfgPath func() string) *cobra.Command {
	var minutes int
	cmd := &cobra.Command{
		Use:   "complete <quest>",
		Short: "Complete an active quest",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("quest name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			line := "complete " + strings.Join(args, " ")
			if cmd.Flags().Changed("minutes") {
				line += fmt.Sprintf(" minutes=%d", minutes)
			}
			return step(cmd, cfgPath, line)
		},
	}
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutes actually spent, for timed quests")
	return cmd
}

func newJournalCmd(cfgPath func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent saved operations (sqlite storage only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfgPath, func(ctx context.Context, a *app) error {
				if a.sqlite == nil {
					return errors.New("journal needs storage: sqlite")
				}
				entries, err := a.sqlite.Journal(ctx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, e := range entries {
					fmt.Fprintf(out, "%s  %-12s %s\n",
						styleMuted.Render(e.At.Local().Format("2006-01-02 15:04")), e.Kind, e.Summary)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func newPlayCmd(cfgPath func() string) *cobra.Command {
	var (
		plain  bool
		trace  bool
		script string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := openApp(ctx, cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			// Script mode: force plain, echo commands.
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				c := cli.New(a.engine)
				c.In = f
				c.Out = cmd.OutOrStdout()
				c.EchoInput = true
				c.Trace = trace
				return c.Run(ctx)
			}

			if plain || a.cfg.Plain || !isTerminal() {
				c := cli.New(a.engine)
				c.Trace = trace
				return c.Run(ctx)
			}
			return tui.Run(ctx, a.engine)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "use the line REPL instead of the dashboard")
	cmd.Flags().BoolVar(&trace, "trace", false, "print engine events after each command")
	cmd.Flags().StringVar(&script, "script", "", "run commands from a file")
	return cmd
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
