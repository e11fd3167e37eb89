package history

import (
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := openPersistence()
		if err := p.DeleteRun(args[0]); err != nil {
			return err
		}
		ui.Success("Deleted run %s", args[0])
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
