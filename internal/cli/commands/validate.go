package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flintmc/internal/config"
	"flintmc/internal/discovery"
	"flintmc/internal/parser"
)

// ValidateCommand handles the validate command.
type ValidateCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
}

// NewValidateCommand creates a new ValidateCommand.
func NewValidateCommand(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter) *ValidateCommand {
	return &ValidateCommand{config: cfg, scanner: scanner, filter: filter}
}

// Execute runs the command.
func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	files, err := vc.scanner.Scan(args[0], vc.config.Flags.Recursive)
	if err != nil {
		return err
	}
	files = vc.filter.FilterByName(files, vc.config.Flags.NameFilter)
	if len(files) == 0 {
		color.Yellow("No test specs found at: %s", args[0])
		return nil
	}

	invalid := 0
	for _, file := range files {
		spec, err := parser.ParseFile(file)
		if err != nil {
			invalid++
			color.Red("✗ %s", err)
			continue
		}
		fmt.Printf("%s %s %s\n", color.GreenString("✓"), spec.Name, color.HiBlackString("(%s)", file))
	}

	fmt.Println()
	if invalid > 0 {
		return fmt.Errorf("%d of %d spec(s) invalid", invalid, len(files))
	}
	color.Green("All %d spec(s) valid", len(files))
	return nil
}
