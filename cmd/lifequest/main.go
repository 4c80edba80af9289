// Lifequest is a gamified self-improvement tracker: quests, coins, gear,
// pets and punishments for a single local player.
//
// Usage: lifequest [--config file] <command>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nathoo/lifequest/config"
	"github.com/nathoo/lifequest/engine"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleBad.Render(iconError+" "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "lifequest",
		Short:         "Lifequest: level up your real life",
		Long:          "Lifequest turns workouts, study, faith and projects into quests with XP, coins, gear and pets.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $LIFEQUEST_HOME/config.yaml)")

	cfgPath := func() string {
		if configPath != "" {
			return configPath
		}
		return config.DefaultPath()
	}

	root.AddCommand(
		newPlayCmd(cfgPath),
		newViewCmd(cfgPath, "status", "Show progression, currencies and skills", (*engine.Engine).StatusLines),
		newViewCmd(cfgPath, "quests", "List active quests", (*engine.Engine).QuestLines),
		newViewCmd(cfgPath, "shop", "List shop items and prices", (*engine.Engine).ShopLines),
		newViewCmd(cfgPath, "daily", "Show today's checklist", (*engine.Engine).DailyLines),
		newCompleteCmd(cfgPath),
		newStepCmd(cfgPath, "buy <item[:qty]>...", "Buy items from the shop", "buy"),
		newStepCmd(cfgPath, "punish <name>", "Apply a punishment", "punish"),
		newStepCmd(cfgPath, "transcend [item]", "Transcend, or transcend a gear item", "transcend"),
		newJournalCmd(cfgPath),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifequest %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
