package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flintmc/internal/config"
	"flintmc/internal/discovery"
	"flintmc/internal/domain"
	"flintmc/internal/execution"
	"flintmc/internal/parser"
	"flintmc/internal/storage"
	"flintmc/internal/ui"
	"flintmc/internal/world"
)

// RunCommand handles the run command.
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    *ui.ErrorViewer
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer *ui.ErrorViewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	rc.config.LoadEnv()

	mode := execution.BreakMode(rc.config.Flags.BreakMode)
	if mode != execution.BreakConsole && mode != execution.BreakChat {
		return fmt.Errorf("invalid break mode %q (want console or chat)", rc.config.Flags.BreakMode)
	}

	server := rc.config.GetServer()
	if server == "" {
		return fmt.Errorf("no server address: pass --server or set FLINT_SERVER")
	}

	// Discover and load specs. A spec that fails to parse or validate
	// aborts the batch before any connection is made.
	files, err := rc.scanner.Scan(args[0], rc.config.Flags.Recursive)
	if err != nil {
		return err
	}
	files = rc.filter.FilterByName(files, rc.config.Flags.NameFilter)
	if len(files) == 0 {
		color.Yellow("No test specs found at: %s", args[0])
		return nil
	}

	specs := make([]*domain.TestSpec, 0, len(files))
	for _, file := range files {
		spec, err := parser.ParseFile(file)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}
	color.Green("Loaded %d test spec(s)\n", len(specs))

	// Connect to the world.
	fmt.Printf("%s Connecting to %s...\n", color.BlueString("→"), server)
	client, err := world.Connect(server, rc.config.ConnectTimeout)
	if err != nil {
		return err
	}
	defer client.Close()
	fmt.Printf("%s Connected\n\n", color.GreenString("✓"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	executor := execution.NewExecutor(client, rc.config, os.Stdout)
	breakpoints := execution.NewBreakpointController(mode, os.Stdin, client, os.Stdout)
	scheduler := execution.NewScheduler(client, rc.config, executor, breakpoints, os.Stdout)
	scheduler.EnableProgress()

	start := time.Now()
	results, failures, err := scheduler.Run(ctx, specs)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	output := storage.BuildOutput(results, failures, time.Since(start), server)
	if err := rc.storage.SaveOutput(output); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}
	rc.recordHistory(output)

	rc.formatter.PrintSummary(output)

	if output.Meta.FailedTests > 0 {
		if rc.config.Flags.OpenFaills {
			if err := rc.viewer.View(output); err != nil {
				return err
			}
		}
		return fmt.Errorf("%d test(s) failed", output.Meta.FailedTests)
	}
	return nil
}

// recordHistory appends the run to the MySQL history when configured.
// History is best effort and never fails the run.
func (rc *RunCommand) recordHistory(output *domain.RunOutput) {
	dsn := rc.config.HistoryDSN
	if dsn == "" {
		return
	}
	history, err := storage.OpenHistory(dsn)
	if err != nil {
		color.Yellow("history: %v", err)
		return
	}
	defer history.Close()
	if err := history.Record(output); err != nil {
		color.Yellow("history: %v", err)
	}
}
