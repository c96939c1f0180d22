// Command bnbcli manages keys and submits transactions to the Binance
// Chain DEX.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Klingon-tech/binance-chain-go/config"
	"github.com/Klingon-tech/binance-chain-go/internal/journal"
	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/internal/storage"
	"github.com/Klingon-tech/binance-chain-go/pkg/httpclient"
	"github.com/Klingon-tech/binance-chain-go/pkg/noderpc"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/Klingon-tech/binance-chain-go/pkg/wallet"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal("%v", err)
	}
}

// cli carries the state shared by all commands of one invocation.
type cli struct {
	cfg          *config.Config
	configPath   string
	keyName      string
	passwordFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "bnbcli",
		Short:         "Binance Chain DEX command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Config file (default <datadir>/bnbcli.yaml)")
	pf.String("network", "", "Network: mainnet or testnet")
	pf.String("chain-id", "", "Override the network chain id")
	pf.String("datadir", "", "Data directory")
	pf.String("api", "", "DEX API base URL")
	pf.String("rpc", "", "Node RPC URL")
	pf.String("ws", "", "Websocket stream URL")
	pf.String("log-level", "", "Log level (debug, info, warn, error, off)")
	pf.String("log-file", "", "Also write JSON logs to this file")
	pf.Bool("log-json", false, "Log as JSON")
	pf.String("keystore", "", "Keystore directory")
	pf.StringVar(&c.keyName, "key", "default", "Name of the signing key")
	pf.StringVar(&c.passwordFile, "password-file", "", "Read the key password from a file instead of the terminal")

	root.AddCommand(
		newWalletCmd(c),
		newKeysCmd(c),
		newSignCmd(c),
		newTxCmd(c),
		newAccountCmd(c),
		newMarketsCmd(c),
		newDepthCmd(c),
		newTimeCmd(c),
		newStatusCmd(c),
		newStreamCmd(c),
	)
	c.addTxCommands(root, c.broadcastRun, broadcastFlags)
	return root
}

func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	c.cfg = cfg
	return nil
}

func (c *cli) network() types.Network {
	return c.cfg.Network.Network()
}

func (c *cli) keyDir() (*wallet.KeyDir, error) {
	return wallet.NewKeyDir(c.cfg.KeystoreDir())
}

// keyAddress reads the address of the selected key without a password.
func (c *cli) keyAddress() (types.Address, error) {
	kd, err := c.keyDir()
	if err != nil {
		return types.Address{}, err
	}
	doc, err := kd.Read(c.keyName)
	if err != nil {
		return types.Address{}, err
	}
	return wallet.KeystoreAddress(doc)
}

// loadWallet decrypts the selected key.
func (c *cli) loadWallet() (*wallet.Wallet, error) {
	kd, err := c.keyDir()
	if err != nil {
		return nil, err
	}
	password, err := c.password("Enter password: ", false)
	if err != nil {
		return nil, err
	}
	key, err := kd.Load(c.keyName, password)
	if err != nil {
		return nil, err
	}
	return wallet.FromKey(c.network(), key), nil
}

// password reads the key password from --password-file or the terminal.
func (c *cli) password(prompt string, confirm bool) (string, error) {
	if c.passwordFile != "" {
		data, err := os.ReadFile(c.passwordFile)
		if err != nil {
			return "", fmt.Errorf("read password file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	password, err := readPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if confirm {
		again, err := readPassword("Confirm password: ")
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		if string(password) != string(again) {
			return "", fmt.Errorf("passwords do not match")
		}
	}
	return string(password), nil
}

func (c *cli) api() *httpclient.Client {
	return httpclient.New(c.cfg.API.URL, httpclient.WithTimeout(c.cfg.API.Timeout))
}

func (c *cli) rpc() *noderpc.Client {
	return noderpc.NewWithTimeout(c.cfg.RPC.URL, c.cfg.RPC.Timeout)
}

// openJournal returns nil when the journal is disabled. The returned close
// function is always safe to call.
func (c *cli) openJournal() (*journal.Journal, func(), error) {
	if !c.cfg.Journal.Enabled {
		return nil, func() {}, nil
	}
	db, closeFn, err := c.openJournalDB()
	if err != nil {
		return nil, func() {}, err
	}
	return journal.New(db), closeFn, nil
}

// openJournalDB opens the journal store scoped to the configured network.
func (c *cli) openJournalDB() (*storage.PrefixDB, func(), error) {
	var db storage.DB
	if c.cfg.Journal.Backend == config.JournalMemory {
		db = storage.NewMemory()
	} else {
		bdb, err := storage.NewBadger(c.cfg.JournalDir())
		if err != nil {
			return nil, func() {}, err
		}
		db = bdb
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Storage.Warn().Err(err).Msg("Close journal")
		}
	}
	prefix := []byte(string(c.cfg.Network) + "/")
	return storage.NewPrefixDB(db, prefix), closeFn, nil
}

// parseAddress accepts a bech32 address of the configured network.
func (c *cli) parseAddress(s string) (types.Address, error) {
	addr, network, err := types.ParseAddress(s)
	if err != nil {
		return types.Address{}, err
	}
	if network != c.network() {
		return types.Address{}, fmt.Errorf("%s is a %s address, want %s", s, network, c.network())
	}
	return addr, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ── Terminal helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
