package types

import (
	"fmt"
	"strings"
)

// Address HRP (human-readable part) constants for bech32 encoding.
const (
	MainnetHRP = "bnb"
	TestnetHRP = "tbnb"
)

// Default chain IDs for the public networks.
const (
	MainnetChainID = "Binance-Chain-Tigris"
	TestnetChainID = "Binance-Chain-Nile"
)

// Network identifies the chain an address or transaction belongs to.
type Network uint8

const (
	Mainnet Network = iota
	Testnet
)

// HRP returns the bech32 human-readable prefix used for addresses on n.
func (n Network) HRP() string {
	if n == Testnet {
		return TestnetHRP
	}
	return MainnetHRP
}

// ChainID returns the default chain ID of n.
func (n Network) ChainID() string {
	if n == Testnet {
		return TestnetChainID
	}
	return MainnetChainID
}

// String returns "mainnet" or "testnet".
func (n Network) String() string {
	if n == Testnet {
		return "testnet"
	}
	return "mainnet"
}

// ParseNetwork parses a network name ("mainnet", "testnet") or its HRP.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main", MainnetHRP:
		return Mainnet, nil
	case "testnet", "test", TestnetHRP:
		return Testnet, nil
	default:
		return Mainnet, fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
	}
}

// NetworkFromHRP maps an address prefix back to its network.
func NetworkFromHRP(hrp string) (Network, bool) {
	switch hrp {
	case MainnetHRP:
		return Mainnet, true
	case TestnetHRP:
		return Testnet, true
	default:
		return Mainnet, false
	}
}
