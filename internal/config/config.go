package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/shoplist/internal/storage"
)

const (
	EnvPrefix        = "SHOPLIST"
	ConfigName       = ".shoplist"
	ContainerDataDir = "/app/data"
)

type RuntimeConfig struct {
	DataDir     string
	Backend     storage.Backend
	NoColor     bool
	InContainer bool
	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

// Overrides carry command-line values; empty fields are ignored.
type Overrides struct {
	ConfigFile string
	DataDir    string
	Backend    string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir: "data",
		Backend: storage.BackendCSV,
		NoColor: false,
	}
}

// containerCheck is swapped out in tests.
var containerCheck = func() bool {
	info, err := os.Stat(ContainerDataDir)
	return err == nil && info.IsDir()
}

// Load resolves configuration from defaults, an optional .shoplist.yaml,
// SHOPLIST_* environment variables and finally overrides, in that order.
func Load(o Overrides) (RuntimeConfig, error) {
	base := DefaultRuntimeConfig()

	v := viper.New()
	v.SetDefault("data_dir", base.DataDir)
	v.SetDefault("backend", string(base.Backend))
	v.SetDefault("no_color", base.NoColor)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.ConfigFile != "" || !errors.As(err, &notFound) {
			return RuntimeConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	if o.DataDir != "" {
		v.Set("data_dir", o.DataDir)
	}
	if o.Backend != "" {
		v.Set("backend", o.Backend)
	}

	backend, err := storage.ParseBackend(v.GetString("backend"))
	if err != nil {
		return RuntimeConfig{}, err
	}
	dataDir := strings.TrimSpace(v.GetString("data_dir"))
	if dataDir == "" {
		dataDir = base.DataDir
	}
	dataDir, err = homedir.Expand(dataDir)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("expand data dir: %w", err)
	}

	return RuntimeConfig{
		DataDir:     dataDir,
		Backend:     backend,
		NoColor:     v.GetBool("no_color"),
		InContainer: containerCheck(),
		ConfigFile:  v.ConfigFileUsed(),
	}, nil
}

// OpenStore opens the configured backend.
func (c RuntimeConfig) OpenStore() (storage.Store, error) {
	return storage.Open(c.Backend, c.DataDir)
}
