package history

import (
	"strings"

	"github.com/pidwin/pidwin/cmd/global"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := openPersistence()
		runs, err := p.ListRuns()
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			ui.Info("No saved runs yet, use 'pidwin simulate --save' to create one.")
			return nil
		}

		var rows [][]string
		for _, run := range runs {
			rows = append(rows, []string{
				run.Id,
				run.CreatedAt.Format("2006-01-02 15:04:05"),
				strings.Join(run.Loops, ", "),
			})
		}
		tableString, err := ui.FormatTable([]string{"Id", "Created", "Loops"}, rows, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
