package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flintmc/internal/config"
	"flintmc/internal/discovery"
	"flintmc/internal/domain"
	"flintmc/internal/parser"
	"flintmc/internal/storage"
	"flintmc/internal/ui"
)

// ListCommand handles the list command.
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand.
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	files, err := lc.scanner.Scan(args[0], lc.config.Flags.Recursive)
	if err != nil {
		return err
	}
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)
	if len(files) == 0 {
		color.Yellow("No test specs found at: %s", args[0])
		return nil
	}

	var paths []string
	var specs []*domain.TestSpec
	for _, file := range files {
		spec, err := parser.ParseFile(file)
		if err != nil {
			color.Red("Error reading spec %s: %v", file, err)
			continue
		}
		paths = append(paths, file)
		specs = append(specs, spec)
	}

	// Mark tests that failed in the last stored run, if any.
	failedNames := make(map[string]struct{})
	if output, err := lc.storage.Load(); err == nil {
		for _, r := range output.Results {
			if !r.Success {
				failedNames[r.TestName] = struct{}{}
			}
		}
	}

	lc.formatter.PrintSpecList(paths, specs, lc.config.Flags.Timeline, failedNames)
	return nil
}
