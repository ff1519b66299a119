package commands

import (
	"flintmc/internal/cli"
	"flintmc/internal/config"
	"flintmc/internal/discovery"
	"flintmc/internal/storage"
	"flintmc/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands.
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Validate *ValidateCommand
	Faills   *FaillsCommand
}

// NewCommands creates all commands with dependencies.
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, jsonStorage, formatter, errorViewer),
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Validate: NewValidateCommand(cfg, scanner, filter),
		Faills:   NewFaillsCommand(jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	runCmd := &cobra.Command{
		Use:   "run PATH",
		Short: "Run test specs against a live game server",
		Long:  "Discover test specs, merge their timelines and drive them tick by tick against one shared world",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runCmd.Flags().StringVarP(&flags.Server, "server", "s", "", "World-control server address (e.g. localhost:8080)")
	runCmd.Flags().BoolVarP(&flags.Recursive, "recursive", "r", false, "Recursively search directories for spec files")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter spec files by name pattern (supports wildcards, e.g. '*redstone*')")
	runCmd.Flags().BoolVar(&flags.BreakAfterSetup, "break-after-setup", false, "Pause for step/continue once before the first tick")
	runCmd.Flags().StringVar(&flags.BreakMode, "break-mode", "console", "Breakpoint input source: console or chat")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:   "list PATH",
		Short: "List discovered test specs",
		Long:  "Scan and list all test specs without executing them",
		Args:  cobra.ExactArgs(1),
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().BoolVarP(&flags.Recursive, "recursive", "r", false, "Recursively search directories for spec files")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter spec files by name pattern")
	listCmd.Flags().BoolVarP(&flags.Timeline, "timeline", "t", false, "Show each spec's timeline entries")
	rootCmd.AddCommand(listCmd)

	validateCmd := &cobra.Command{
		Use:   "validate PATH",
		Short: "Validate test specs without running them",
		Long:  "Parse every spec and check its region and containment invariants, without connecting to a server",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Validate.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	validateCmd.Flags().BoolVarP(&flags.Recursive, "recursive", "r", false, "Recursively search directories for spec files")
	validateCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter spec files by name pattern")
	rootCmd.AddCommand(validateCmd)

	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View assertion failures interactively",
		Long:  "Display assertion failures from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
