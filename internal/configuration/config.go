package configuration

import (
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/spf13/viper"
	"os"
	"time"
)

const (
	DefaultHistoryLength = 5
	DefaultTankArea      = 5.0
	DefaultSeed          = 770405
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// wall-clock time that passes per simulation step when running as a daemon
	TickRate time.Duration `json:"tickRate"`

	Time TimeConfig `json:"time"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`

	Loops []LoopConfig `json:"loops"`
}

type TimeConfig struct {
	// simulation step [s]
	Delta float64 `json:"delta"`
	// length of a batch simulation [s]
	Max float64 `json:"max"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pidwin")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pidwin/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "~/.pidwin/pidwin.db")
	viper.SetDefault("tickRate", 100*time.Millisecond)

	viper.SetDefault("time.delta", 1.0)
	viper.SetDefault("time.max", 3600.0)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("loops", []LoopConfig{})
}

// DetectAndReadConfigFile reads the config file and returns its path.
// A config file is required, so this fails if none can be found.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := loadConfig()
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func loadConfig() error {
	CurrentConfig = Configuration{}
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			CalculableFloatHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return err
	}
	applyLoopDefaults(&CurrentConfig)
	return nil
}

// applyLoopDefaults fills in values that viper cannot default, since they are
// part of list entries.
func applyLoopDefaults(config *Configuration) {
	for i := range config.Loops {
		loop := &config.Loops[i]
		if loop.Process.Area == 0 {
			loop.Process.Area = DefaultTankArea
		}
		if loop.Forcing.Type == "" {
			loop.Forcing.Type = ForcingTypeConstant
		}
		if loop.Forcing.Seed == 0 {
			loop.Forcing.Seed = DefaultSeed
		}
		if loop.Control.HistoryLength == 0 {
			loop.Control.HistoryLength = DefaultHistoryLength
		}
		if loop.Control.Delta == 0 {
			loop.Control.Delta = config.Time.Delta
		}
	}
}
