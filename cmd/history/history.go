package history

import (
	"github.com/pidwin/pidwin/cmd/global"
	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/persistence"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved simulation runs",
}

func openPersistence() persistence.Persistence {
	global.SetupUi()
	configPath := configuration.DetectAndReadConfigFile()
	ui.Debug("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	return global.OpenPersistence()
}
