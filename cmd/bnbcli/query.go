package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/binance-chain-go/internal/log"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/Klingon-tech/binance-chain-go/pkg/websocket"
)

func newAccountCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "account [address]",
		Short: "Show balances, account number and sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := c.addressArg(args)
			if err != nil {
				return err
			}
			acct, err := c.api().Account(cmd.Context(), addr.Bech32(c.network().HRP()))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), acct)
		},
	}
}

// addressArg returns the optional address argument, or the signing key's
// address when it is missing.
func (c *cli) addressArg(args []string) (types.Address, error) {
	if len(args) > 0 {
		return c.parseAddress(args[0])
	}
	return c.keyAddress()
}

func newMarketsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markets",
		Short: "List trading pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt64("limit")
			offset, _ := cmd.Flags().GetInt64("offset")
			markets, err := c.api().Markets(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range markets {
				fmt.Fprintf(out, "%-24s  price %s  tick %s  lot %s\n",
					m.Symbol(), m.ListPrice, m.TickSize, m.LotSize)
			}
			return nil
		},
	}
	cmd.Flags().Int64("limit", 0, "Maximum number of markets")
	cmd.Flags().Int64("offset", 0, "Offset into the list")
	return cmd
}

func newDepthCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "depth <symbol>",
		Short: "Show the order book of a pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			depth, err := c.api().Depth(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), depth)
		},
	}
	cmd.Flags().Int("limit", 0, "Levels per side (5, 10, 20, 50, 100, 500 or 1000)")
	return cmd
}

func newTimeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Show the latest block time and the API server time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := c.api().Time(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Block:  %s\nServer: %s\n", t.BlockTime, t.APTime)
			return nil
		},
	}
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the node's chain head",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.rpc().Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Network:  %s\n", st.NodeInfo.Network)
			fmt.Fprintf(out, "Moniker:  %s\n", st.NodeInfo.Moniker)
			fmt.Fprintf(out, "Height:   %d\n", st.SyncInfo.LatestBlockHeight)
			fmt.Fprintf(out, "Block:    %s\n", st.SyncInfo.LatestBlockHash)
			fmt.Fprintf(out, "Time:     %s\n", st.SyncInfo.LatestBlockTime.UTC().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Syncing:  %v\n", st.SyncInfo.CatchingUp)
			return nil
		},
	}
}

func newTxCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Look up transactions",
	}

	get := &cobra.Command{
		Use:   "get <hash>",
		Short: "Fetch a transaction from the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.api().Tx(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	history := &cobra.Command{
		Use:   "history [address]",
		Short: "List transactions this client broadcast, oldest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := c.addressArg(args)
			if err != nil {
				return err
			}
			j, closeJournal, err := c.openJournal()
			if err != nil {
				return err
			}
			defer closeJournal()
			if j == nil {
				return fmt.Errorf("journal is disabled")
			}

			entries, err := j.List(addr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No transactions recorded.")
				return nil
			}
			for _, e := range entries {
				status := "ok"
				if !e.OK() {
					status = fmt.Sprintf("code %d", e.Code)
				}
				fmt.Fprintf(out, "%s  %6d  %-14s  %-10s  %s\n",
					e.Time.Format("2006-01-02 15:04:05"), e.Sequence, e.Kind, status, e.Hash)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear-history",
		Short: "Delete every journal record of the configured network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Fprintf(cmd.ErrOrStderr(), "Delete the %s transaction journal? [y/N] ", c.cfg.Network)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					return fmt.Errorf("aborted")
				}
			}
			db, closeJournal, err := c.openJournalDB()
			if err != nil {
				return err
			}
			defer closeJournal()
			if err := db.DeleteAll(); err != nil {
				return fmt.Errorf("clear journal: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s journal\n", c.cfg.Network)
			return nil
		},
	}
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(get, history, clearCmd)
	return cmd
}

func newStreamCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream <topic> [symbol...]",
		Short: "Print websocket stream events until interrupted",
		Long: `Subscribe to a DEX stream and print every event as a JSON line.

Topics: trades, marketDiff, marketDepth, kline_<interval>, ticker, allTickers,
miniTicker, allMiniTickers, blockheight, orders, accounts, transfers.
User topics (orders, accounts, transfers) use --address or the signing key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, symbols := args[0], args[1:]

			var address string
			switch topic {
			case "orders", "accounts", "transfers":
				addrStr, _ := cmd.Flags().GetString("address")
				var addrArgs []string
				if addrStr != "" {
					addrArgs = []string{addrStr}
				}
				addr, err := c.addressArg(addrArgs)
				if err != nil {
					return err
				}
				address = addr.Bech32(c.network().HRP())
			case "allTickers", "allMiniTickers", "blockheight":
				symbols = []string{"$all"}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := websocket.NewManager(c.cfg.WS.URL, websocket.WithErrorHandler(func(err error) {
				log.WS.Warn().Err(err).Msg("Stream error")
			}))
			if err := m.Connect(ctx); err != nil {
				return err
			}
			defer m.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			err := m.Subscribe(topic, symbols, address, func(msg websocket.Message) {
				if err := enc.Encode(msg); err != nil {
					log.WS.Error().Err(err).Msg("Write event")
				}
			})
			if err != nil {
				return err
			}

			err = m.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("address", "", "Address for user streams (default: the signing key)")
	return cmd
}
