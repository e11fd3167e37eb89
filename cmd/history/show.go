package history

import (
	"github.com/pidwin/pidwin/cmd/global"
	"github.com/spf13/cobra"
)

var noPlot bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the summary and graphs of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := openPersistence()
		result, err := p.LoadRun(args[0])
		if err != nil {
			return err
		}
		global.PrintResult(result, !noPlot)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVarP(&noPlot, "no-plot", "", false, "Don't plot the time series")
	Command.AddCommand(showCmd)
}
