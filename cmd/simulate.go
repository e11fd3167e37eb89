package cmd

import (
	"os"

	"github.com/pidwin/pidwin/cmd/global"
	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/simulation"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/pidwin/pidwin/internal/util"
	"github.com/spf13/cobra"
)

var (
	csvDir string
	save   bool
	noPlot bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate all configured loops with and without control",
	Long: `Runs a batch simulation of all configured loops for time.max seconds,
once without and once with control, and prints a summary of the final state.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		global.SetupUi()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			ui.Error("Config Validation Error: %v", err)
			os.Exit(1)
		}

		result, err := simulation.Run(configuration.CurrentConfig)
		if err != nil {
			ui.Fatal("Simulation failed: %v", err)
		}

		global.PrintResult(result, !noPlot)

		if csvDir != "" {
			dir, err := util.ExpandPath(csvDir)
			if err != nil {
				ui.Fatal("Invalid csv directory %s: %v", csvDir, err)
			}
			paths, err := result.WriteCsv(dir)
			if err != nil {
				ui.Fatal("Unable to write csv: %v", err)
			}
			for _, path := range paths {
				ui.Success("Wrote %s", path)
			}
		}

		if save {
			p := global.OpenPersistence()
			if err := p.SaveRun(result); err != nil {
				ui.Fatal("Unable to save run: %v", err)
			}
			ui.Success("Saved run %s", result.Id)
		}
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&csvDir, "csv", "", "", "Write the time series of every loop as csv into this directory")
	simulateCmd.Flags().BoolVarP(&save, "save", "s", false, "Save the result to the run history")
	simulateCmd.Flags().BoolVarP(&noPlot, "no-plot", "", false, "Don't plot the time series")

	rootCmd.AddCommand(simulateCmd)
}
