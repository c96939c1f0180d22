package config

import "time"

// Public endpoints.
const (
	MainnetAPI = "https://dex.binance.org"
	TestnetAPI = "https://testnet-dex.binance.org"
	MainnetRPC = "https://dataseed1.binance.org:443"
	TestnetRPC = "https://data-seed-pre-0-s1.binance.org:443"
	MainnetWS  = "wss://dex.binance.org/api/ws"
	TestnetWS  = "wss://testnet-dex.binance.org/api/ws"
)

const defaultTimeout = 10 * time.Second

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		API: EndpointConfig{
			URL:     MainnetAPI,
			Timeout: defaultTimeout,
		},
		RPC: EndpointConfig{
			URL:     MainnetRPC,
			Timeout: defaultTimeout,
		},
		WS: WSConfig{
			URL: MainnetWS,
		},
		Log: LogConfig{
			Level: "info",
		},
		Journal: JournalConfig{
			Enabled: true,
			Backend: JournalBadger,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.API.URL = TestnetAPI
	cfg.RPC.URL = TestnetRPC
	cfg.WS.URL = TestnetWS
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
