package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BNBCLI_API_URL.
const EnvPrefix = "BNBCLI"

// ConfigName is the base name of the config file searched in the data
// directory (bnbcli.yaml, bnbcli.toml, ...).
const ConfigName = "bnbcli"

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"network":   "network",
	"chain-id":  "chain_id",
	"datadir":   "datadir",
	"api":       "api.url",
	"rpc":       "rpc.url",
	"ws":        "ws.url",
	"log-level": "log.level",
	"log-file":  "log.file",
	"log-json":  "log.json",
	"keystore":  "keystore.dir",
}

// Load resolves the configuration. path names an explicit config file; when
// empty, bnbcli.* in the data directory is used if present. flags may be
// nil; only flags the user actually set override file and environment.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetDefault("datadir", DefaultDataDir())
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(v.GetString("datadir"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// The network picks the defaults for everything else.
	network := NetworkType(strings.ToLower(v.GetString("network")))
	if network == "" {
		network = Mainnet
	}
	setDefaults(v, Default(network))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Network = NetworkType(strings.ToLower(string(cfg.Network)))
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("network", string(d.Network))
	v.SetDefault("chain_id", d.ChainID)
	v.SetDefault("datadir", d.DataDir)
	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("rpc.url", d.RPC.URL)
	v.SetDefault("rpc.timeout", d.RPC.Timeout)
	v.SetDefault("ws.url", d.WS.URL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.backend", d.Journal.Backend)
	v.SetDefault("keystore.dir", d.Keystore.Dir)
}
