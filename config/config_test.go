package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

func TestDefault(t *testing.T) {
	main := Default(Mainnet)
	require.Equal(t, MainnetAPI, main.API.URL)
	require.Equal(t, MainnetRPC, main.RPC.URL)
	require.Equal(t, MainnetWS, main.WS.URL)
	require.NoError(t, Validate(main))

	test := Default(Testnet)
	require.Equal(t, Testnet, test.Network)
	require.Equal(t, TestnetAPI, test.API.URL)
	require.Equal(t, types.Testnet, test.Network.Network())
	require.NoError(t, Validate(test))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"network", func(c *Config) { c.Network = "devnet" }},
		{"datadir", func(c *Config) { c.DataDir = "" }},
		{"api url", func(c *Config) { c.API.URL = "dex.binance.org" }},
		{"rpc scheme", func(c *Config) { c.RPC.URL = "ftp://dataseed1.binance.org" }},
		{"ws scheme", func(c *Config) { c.WS.URL = "https://dex.binance.org/api/ws" }},
		{"timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"backend", func(c *Config) { c.Journal.Backend = "leveldb" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(Mainnet)
			tt.mutate(cfg)
			require.Error(t, Validate(cfg))
		})
	}

	require.Error(t, Validate(nil))

	cfg := Default(Mainnet)
	cfg.Journal.Backend = " Memory "
	require.NoError(t, Validate(cfg))
	require.Equal(t, JournalMemory, cfg.Journal.Backend)
}

func TestDirs(t *testing.T) {
	cfg := Default(Testnet)
	cfg.DataDir = "/data"
	require.Equal(t, filepath.Join("/data", "testnet", "keystore"), cfg.KeystoreDir())
	require.Equal(t, filepath.Join("/data", "journal"), cfg.JournalDir())
	require.Equal(t, filepath.Join("/data", "bnbcli.yaml"), cfg.ConfigFile())

	cfg.Keystore.Dir = "/keys"
	require.Equal(t, "/keys", cfg.KeystoreDir())
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BNBCLI_DATADIR", dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, Mainnet, cfg.Network)
	require.Equal(t, dir, cfg.DataDir)
	require.Equal(t, MainnetAPI, cfg.API.URL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout)
	require.True(t, cfg.Journal.Enabled)
}

func TestLoad_FileSelectsNetworkDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bnbcli.yaml", `
network: testnet
datadir: `+dir+`
api:
  timeout: 3s
log:
  level: debug
  json: true
journal:
  backend: memory
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, Testnet, cfg.Network)
	require.Equal(t, TestnetAPI, cfg.API.URL)
	require.Equal(t, TestnetWS, cfg.WS.URL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, 10*time.Second, cfg.RPC.Timeout)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Log.JSON)
	require.Equal(t, JournalMemory, cfg.Journal.Backend)
}

func TestLoad_SearchesDataDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bnbcli.toml", `
chain_id = "Binance-Chain-Ganges"

[rpc]
url = "http://localhost:26657"
`)
	t.Setenv("BNBCLI_DATADIR", dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, "Binance-Chain-Ganges", cfg.ChainID)
	require.Equal(t, "http://localhost:26657", cfg.RPC.URL)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bnbcli.yaml", `
datadir: `+dir+`
api:
  url: https://file.example.org
rpc:
  url: https://file.example.org:443
log:
  level: warn
`)
	t.Setenv("BNBCLI_API_URL", "https://env.example.org")
	t.Setenv("BNBCLI_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api", "", "")
	flags.String("log-level", "info", "")
	flags.String("network", "", "")
	require.NoError(t, flags.Parse([]string{"--api", "https://flag.example.org"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	require.Equal(t, "https://flag.example.org", cfg.API.URL)
	require.Equal(t, "https://file.example.org:443", cfg.RPC.URL)
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, Mainnet, cfg.Network)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)

	path := writeFile(t, dir, "bad.yaml", "network: devnet\ndatadir: "+dir+"\n")
	_, err = Load(path, nil)
	require.Error(t, err)
}
