package global

import (
	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/persistence"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/pidwin/pidwin/internal/util"
	"github.com/pterm/pterm"
)

func SetupUi() {
	ui.SetDebugEnabled(Verbose)

	if NoColor {
		pterm.DisableColor()
	}
	if NoStyle {
		pterm.DisableStyling()
	}
}

// OpenPersistence returns the run history at the configured db path
func OpenPersistence() persistence.Persistence {
	dbPath, err := util.ExpandPath(configuration.CurrentConfig.DbPath)
	if err != nil {
		ui.Fatal("Invalid db path %s: %v", configuration.CurrentConfig.DbPath, err)
	}
	p := persistence.NewPersistence(dbPath)
	if err := p.Init(); err != nil {
		ui.Fatal("Unable to initialize db: %v", err)
	}
	return p
}
