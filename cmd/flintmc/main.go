package main

import (
	"fmt"
	"os"

	"flintmc/internal/cli"
	"flintmc/internal/cli/commands"
	"flintmc/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "flintmc",
		Short:   "Tick-synchronized game server testing framework",
		Long:    `A declarative test orchestrator for live game servers. Test specs declare timelines of world mutations and assertions keyed to simulation ticks; flintmc merges them into one schedule and drives the server tick by tick over its control channel.`,
		Version: version,
	}

	cfg := config.New()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
