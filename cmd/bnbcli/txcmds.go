package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/pkg/client"
	"github.com/Klingon-tech/binance-chain-go/pkg/noderpc"
	"github.com/Klingon-tech/binance-chain-go/pkg/tx"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// msgBuilder turns command arguments into a message for sender at sequence.
type msgBuilder func(cmd *cobra.Command, args []string, from types.Address, sequence int64) (tx.Msg, error)

// runner wraps a builder into a command body: broadcast online or sign offline.
type runner func(build msgBuilder) func(*cobra.Command, []string) error

type txDef struct {
	group string
	use   string
	short string
	args  cobra.PositionalArgs
	flags func(*pflag.FlagSet)
	build msgBuilder
}

var groupShort = map[string]string{
	"order": "Place and cancel orders",
	"token": "Issue, mint and burn tokens",
}

func (c *cli) txDefs() []txDef {
	return []txDef{
		{
			group: "order",
			use:   "new <symbol> <buy|sell> <price> <quantity>",
			short: "Place a limit order",
			args:  cobra.ExactArgs(4),
			flags: func(fs *pflag.FlagSet) {
				fs.String("type", "limit", "Order type")
				fs.String("tif", "GTE", "Time in force: GTE or IOC")
			},
			build: func(cmd *cobra.Command, args []string, from types.Address, sequence int64) (tx.Msg, error) {
				side, err := types.ParseSide(args[1])
				if err != nil {
					return nil, err
				}
				typeStr, _ := cmd.Flags().GetString("type")
				orderType, err := types.ParseOrderType(typeStr)
				if err != nil {
					return nil, err
				}
				tifStr, _ := cmd.Flags().GetString("tif")
				tif, err := types.ParseTimeInForce(tifStr)
				if err != nil {
					return nil, err
				}
				return tx.NewOrder(from, sequence, args[0], side, orderType, args[2], args[3], tif)
			},
		},
		{
			group: "order",
			use:   "cancel <symbol> <order-id>",
			short: "Cancel an open order",
			args:  cobra.ExactArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				return tx.CancelOrder(from, args[0], args[1])
			},
		},
		{
			use:   "transfer <to> <denom:amount>...",
			short: "Send one or more tokens to an address",
			args:  cobra.MinimumNArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				to, err := c.parseAddress(args[0])
				if err != nil {
					return nil, err
				}
				transfers, err := parseTransfers(args[1:])
				if err != nil {
					return nil, err
				}
				if len(transfers) == 1 {
					return tx.NewTransfer(from, to, transfers[0].Denom, transfers[0].Amount)
				}
				return tx.NewMultiTransfer(from, to, transfers)
			},
		},
		{
			use:   "freeze <symbol> <amount>",
			short: "Freeze part of a balance",
			args:  cobra.ExactArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				return tx.NewFreeze(from, args[0], args[1])
			},
		},
		{
			use:   "unfreeze <symbol> <amount>",
			short: "Release a frozen balance",
			args:  cobra.ExactArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				return tx.NewUnfreeze(from, args[0], args[1])
			},
		},
		{
			use:   "vote <proposal-id> <yes|no|abstain|no_with_veto>",
			short: "Vote on a governance proposal",
			args:  cobra.ExactArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("proposal id: %w", err)
				}
				option, err := types.ParseVoteOption(args[1])
				if err != nil {
					return nil, err
				}
				return tx.NewVote(from, id, option)
			},
		},
		{
			group: "token",
			use:   "issue <name> <symbol> <total-supply>",
			short: "Issue a new token",
			args:  cobra.ExactArgs(3),
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("mintable", false, "Allow minting more supply later")
			},
			build: func(cmd *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				mintable, _ := cmd.Flags().GetBool("mintable")
				return tx.NewIssue(from, args[0], args[1], args[2], mintable)
			},
		},
		{
			group: "token",
			use:   "mint <symbol> <amount>",
			short: "Mint more of a mintable token",
			args:  cobra.ExactArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				return tx.NewMint(from, args[0], args[1])
			},
		},
		{
			group: "token",
			use:   "burn <symbol> <amount>",
			short: "Burn part of a token supply",
			args:  cobra.ExactArgs(2),
			build: func(_ *cobra.Command, args []string, from types.Address, _ int64) (tx.Msg, error) {
				return tx.NewBurn(from, args[0], args[1])
			},
		},
	}
}

// addTxCommands attaches every transaction command to parent, running them
// through run. extra adds runner specific flags and may be nil.
func (c *cli) addTxCommands(parent *cobra.Command, run runner, extra func(*pflag.FlagSet)) {
	groups := make(map[string]*cobra.Command)
	for _, def := range c.txDefs() {
		cmd := &cobra.Command{
			Use:   def.use,
			Short: def.short,
			Args:  def.args,
			RunE:  run(def.build),
		}
		fs := cmd.Flags()
		fs.String("memo", "", "Transaction memo")
		fs.Int64("source", tx.DefaultSource, "Source id")
		fs.String("data", "", "Hex data attached to the transaction")
		if def.flags != nil {
			def.flags(fs)
		}
		if extra != nil {
			extra(fs)
		}

		target := parent
		if def.group != "" {
			g, ok := groups[def.group]
			if !ok {
				g = &cobra.Command{Use: def.group, Short: groupShort[def.group]}
				groups[def.group] = g
				parent.AddCommand(g)
			}
			target = g
		}
		target.AddCommand(cmd)
	}
}

func parseTransfers(args []string) ([]tx.Transfer, error) {
	transfers := make([]tx.Transfer, 0, len(args))
	for _, arg := range args {
		denom, amount, ok := strings.Cut(arg, ":")
		if !ok || denom == "" || amount == "" {
			return nil, fmt.Errorf("invalid coin %q, want <denom>:<amount>", arg)
		}
		transfers = append(transfers, tx.Transfer{Denom: denom, Amount: amount})
	}
	return transfers, nil
}

// txOptions reads the envelope flags shared by all transaction commands.
func txOptions(cmd *cobra.Command) ([]client.TxOption, error) {
	var opts []client.TxOption
	fs := cmd.Flags()
	if memo, _ := fs.GetString("memo"); memo != "" {
		opts = append(opts, client.WithMemo(memo))
	}
	if fs.Changed("source") {
		source, _ := fs.GetInt64("source")
		opts = append(opts, client.WithSource(source))
	}
	if dataHex, _ := fs.GetString("data"); dataHex != "" {
		data, err := hex.DecodeString(dataHex)
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		opts = append(opts, client.WithData(data))
	}
	return opts, nil
}

// broadcastRun signs with the stored key and broadcasts through the API or
// the node RPC.
func (c *cli) broadcastRun(build msgBuilder) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := txOptions(cmd)
		if err != nil {
			return err
		}
		w, err := c.loadWallet()
		if err != nil {
			return err
		}

		api := c.api()
		var broadcaster client.Broadcaster = api
		switch via, _ := cmd.Flags().GetString("via"); via {
		case "", "api":
		case "rpc":
			broadcaster = noderpc.Broadcaster{Client: c.rpc()}
		default:
			return fmt.Errorf("--via must be api or rpc, got %q", via)
		}

		j, closeJournal, err := c.openJournal()
		if err != nil {
			return err
		}
		defer closeJournal()

		async, _ := cmd.Flags().GetBool("async")
		svcOpts := []client.Option{client.WithChainID(c.cfg.ChainID), client.WithSync(!async)}
		if j != nil {
			svcOpts = append(svcOpts, client.WithJournal(j))
		}
		svc := client.New(api, broadcaster, w, svcOpts...)

		res, err := svc.Submit(cmd.Context(), func(acct *types.Account) (tx.Msg, error) {
			return build(cmd, args, w.Address(), acct.Sequence)
		}, opts...)
		if res != nil {
			printResult(cmd.OutOrStdout(), res)
		}
		return err
	}
}

func broadcastFlags(fs *pflag.FlagSet) {
	fs.Bool("async", false, "Return before CheckTx instead of waiting for it")
	fs.String("via", "api", "Broadcast through the DEX API (api) or the node RPC (rpc)")
}

func printResult(w io.Writer, res *client.Result) {
	fmt.Fprintf(w, "Hash: %s\n", res.Hash())
	for _, r := range res.Results {
		fmt.Fprintf(w, "Code: %d\n", r.Code)
		if r.Log != "" {
			fmt.Fprintf(w, "Log:  %s\n", r.Log)
		}
	}
}

func newSignCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Build and sign a transaction offline without broadcasting it",
	}
	cmd.PersistentFlags().Int64("account-number", 0, "Account number (required)")
	cmd.PersistentFlags().Int64("sequence", 0, "Account sequence (required)")
	c.addTxCommands(cmd, c.signRun, nil)
	return cmd
}

type signOutput struct {
	Hash      string `json:"hash"`
	Hex       string `json:"hex"`
	SignBytes string `json:"sign_bytes"`
}

func (c *cli) signRun(build msgBuilder) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		fs := cmd.Flags()
		if !fs.Changed("account-number") || !fs.Changed("sequence") {
			return fmt.Errorf("--account-number and --sequence are required")
		}
		accountNumber, _ := fs.GetInt64("account-number")
		sequence, _ := fs.GetInt64("sequence")

		opts, err := txOptions(cmd)
		if err != nil {
			return err
		}
		w, err := c.loadWallet()
		if err != nil {
			return err
		}

		env := tx.NewEnvelope(c.network(), c.cfg.ChainID, accountNumber, sequence)
		for _, opt := range opts {
			opt(&env)
		}
		msg, err := build(cmd, args, w.Address(), sequence)
		if err != nil {
			return err
		}
		signed, err := tx.Sign(env, msg, w)
		if err != nil {
			return err
		}
		log.Tx.Debug().
			Str("hash", signed.Hash().String()).
			Str("kind", msg.Kind().String()).
			Int64("sequence", sequence).
			Msg("Transaction signed offline")
		return printJSON(cmd.OutOrStdout(), signOutput{
			Hash:      signed.Hash().String(),
			Hex:       signed.Hex(),
			SignBytes: string(signed.SignBytes),
		})
	}
}
