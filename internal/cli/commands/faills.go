package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"flintmc/internal/storage"
	"flintmc/internal/ui"
)

// FaillsCommand handles the faills command.
type FaillsCommand struct {
	storage storage.Storage
	viewer  *ui.ErrorViewer
}

// NewFaillsCommand creates a new FaillsCommand.
func NewFaillsCommand(st storage.Storage, viewer *ui.ErrorViewer) *FaillsCommand {
	return &FaillsCommand{storage: st, viewer: viewer}
}

// Execute runs the command.
func (fc *FaillsCommand) Execute(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	output, err := fc.storage.Load()
	if err != nil {
		return fmt.Errorf("no stored run results, run some tests first: %w", err)
	}
	return fc.viewer.View(output)
}
