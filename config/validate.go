package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the config for obvious mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir is empty")
	}
	if err := validateURL("api.url", cfg.API.URL, "http", "https"); err != nil {
		return err
	}
	if err := validateURL("rpc.url", cfg.RPC.URL, "http", "https"); err != nil {
		return err
	}
	if err := validateURL("ws.url", cfg.WS.URL, "ws", "wss"); err != nil {
		return err
	}
	if cfg.API.Timeout < 0 || cfg.RPC.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	cfg.Journal.Backend = strings.ToLower(strings.TrimSpace(cfg.Journal.Backend))
	if cfg.Journal.Backend == "" {
		cfg.Journal.Backend = JournalBadger
	}
	switch cfg.Journal.Backend {
	case JournalBadger, JournalMemory:
	default:
		return fmt.Errorf("journal.backend must be %q or %q", JournalBadger, JournalMemory)
	}
	return nil
}

func validateURL(field, raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s is empty", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must be a %s URL, got %q", field, strings.Join(schemes, " or "), raw)
}
