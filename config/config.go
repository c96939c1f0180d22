// Package config handles client configuration.
//
// Settings are resolved in order: defaults for the selected network, the
// config file, BNBCLI_* environment variables, then command line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Network returns the chain network n selects.
func (n NetworkType) Network() types.Network {
	if n == Testnet {
		return types.Testnet
	}
	return types.Mainnet
}

// Config holds the client configuration.
type Config struct {
	Network NetworkType `mapstructure:"network"`
	// ChainID overrides the network's default chain id when set.
	ChainID string `mapstructure:"chain_id"`
	DataDir string `mapstructure:"datadir"`

	API      EndpointConfig `mapstructure:"api"`
	RPC      EndpointConfig `mapstructure:"rpc"`
	WS       WSConfig       `mapstructure:"ws"`
	Log      LogConfig      `mapstructure:"log"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Keystore KeystoreConfig `mapstructure:"keystore"`
}

// EndpointConfig is a remote HTTP endpoint.
type EndpointConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WSConfig holds the stream endpoint.
type WSConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// Journal backends.
const (
	JournalBadger = "badger"
	JournalMemory = "memory"
)

// JournalConfig controls the local record of broadcast transactions.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"`
}

// KeystoreConfig holds the encrypted key directory. Empty means the
// network's default under DataDir.
type KeystoreConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.bnbcli
//	macOS:   ~/Library/Application Support/Bnbcli
//	Windows: %APPDATA%\Bnbcli
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bnbcli"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Bnbcli")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Bnbcli")
		}
		return filepath.Join(home, "AppData", "Roaming", "Bnbcli")
	default:
		return filepath.Join(home, ".bnbcli")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the directory holding encrypted keys.
func (c *Config) KeystoreDir() string {
	if c.Keystore.Dir != "" {
		return c.Keystore.Dir
	}
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// JournalDir returns the badger directory of the transaction journal. It is
// shared by all networks; entries are kept apart by key prefix.
func (c *Config) JournalDir() string {
	return filepath.Join(c.DataDir, "journal")
}

// ConfigFile returns the default config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "bnbcli.yaml")
}
