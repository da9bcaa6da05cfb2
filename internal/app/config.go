package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qshield/internal/domain"
	"qshield/internal/logging"
)

// Persistence backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // data directory, e.g. $HOME/.qshield
	Passphrase string // seals persisted values when set
	Backend    string // file, sqlite or memory

	Log      logging.Config
	Hub      HubConfig
	Training TrainingConfig
	Delays   DelayConfig

	// Simulator optionally decorates the simulated backend, e.g. with metrics.
	Simulator func(domain.Simulator) domain.Simulator `mapstructure:"-"`
}

// HubConfig configures the HTTP hub.
type HubConfig struct {
	Addr           string
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TrainingConfig tunes the simulated training run.
type TrainingConfig struct {
	Interval   time.Duration
	Step       int
	StartDelay time.Duration `mapstructure:"start_delay"`
}

// DelayConfig holds the latencies of the simulated backend calls.
type DelayConfig struct {
	Certificate  time.Duration
	Registration time.Duration
	Aggregation  time.Duration
	Download     time.Duration
}

// Load reads configuration from defaults, the config file, QSHIELD_* env vars
// and finally any of flags that were set explicitly. flags may be nil.
//
// The config file is $QSHIELD_CONFIG if set, else <home>/config.toml.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("home", defaultHome())
	v.SetDefault("passphrase", "")
	v.SetDefault("backend", BackendFile)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("hub.addr", "127.0.0.1:8080")
	v.SetDefault("hub.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("training.interval", "500ms")
	v.SetDefault("training.step", 2)
	v.SetDefault("training.start_delay", "500ms")
	v.SetDefault("delays.certificate", "1500ms")
	v.SetDefault("delays.registration", "2000ms")
	v.SetDefault("delays.aggregation", "2500ms")
	v.SetDefault("delays.download", "1500ms")

	v.SetEnvPrefix("QSHIELD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for _, name := range []string{"home", "passphrase", "backend"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetConfigType("toml")
	if path := os.Getenv("QSHIELD_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(v.GetString("home"))
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown backend %q", c.Backend)
	}
	return c, nil
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".qshield"
	}
	return filepath.Join(dir, ".qshield")
}
