package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/binance-chain-go/pkg/wallet"
)

func newWalletCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Create, recover and inspect the signing key",
	}
	cmd.PersistentFlags().Bool("light-kdf", false, "Use cheap scrypt parameters for the keystore")
	_ = cmd.PersistentFlags().MarkHidden("light-kdf")

	create := &cobra.Command{
		Use:   "create",
		Short: "Generate a new mnemonic and store its key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			passphrase, _ := cmd.Flags().GetString("passphrase")
			w, err := wallet.NewWithMnemonic(c.network(), passphrase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Mnemonic (write this down!):")
			fmt.Fprintf(out, "  %s\n\n", w.Mnemonic())
			return c.storeWallet(cmd, w)
		},
	}
	create.Flags().String("passphrase", "", "Optional BIP-39 passphrase")

	recoverCmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover a key from a mnemonic or a raw private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, _ := cmd.Flags().GetString("mnemonic")
			passphrase, _ := cmd.Flags().GetString("passphrase")
			privHex, _ := cmd.Flags().GetString("private-key")
			pathStr, _ := cmd.Flags().GetString("path")

			var w *wallet.Wallet
			var err error
			if privHex != "" {
				w, err = wallet.FromPrivateKey(c.network(), privHex)
			} else {
				if mnemonic == "" {
					fmt.Fprint(cmd.ErrOrStderr(), "Enter mnemonic: ")
					line, rerr := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					if rerr != nil && line == "" {
						return fmt.Errorf("read mnemonic: %w", rerr)
					}
					mnemonic = strings.TrimSpace(line)
				}
				var path wallet.DerivationPath
				path, err = wallet.ParseDerivationPath(pathStr)
				if err != nil {
					return err
				}
				w, err = wallet.FromMnemonicPath(c.network(), mnemonic, passphrase, path)
			}
			if err != nil {
				return err
			}
			return c.storeWallet(cmd, w)
		},
	}
	recoverCmd.Flags().String("mnemonic", "", "Mnemonic words (prompted when empty)")
	recoverCmd.Flags().String("passphrase", "", "Optional BIP-39 passphrase")
	recoverCmd.Flags().String("private-key", "", "Hex private key to import instead of a mnemonic")
	recoverCmd.Flags().String("path", wallet.DefaultPathString, "Derivation path")

	address := &cobra.Command{
		Use:   "address",
		Short: "Print the address of the signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := c.keyAddress()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Bech32(c.network().HRP()))
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the unencrypted private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := c.loadWallet()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Anyone with this key controls the account.")
			fmt.Fprintln(cmd.OutOrStdout(), w.PrivateKeyHex())
			return nil
		},
	}

	cmd.AddCommand(create, recoverCmd, address, export)
	return cmd
}

// storeWallet encrypts w under the selected key name.
func (c *cli) storeWallet(cmd *cobra.Command, w *wallet.Wallet) error {
	kd, err := c.keyDir()
	if err != nil {
		return err
	}
	if _, err := kd.Read(c.keyName); err == nil {
		return fmt.Errorf("%w: %q", wallet.ErrKeyExists, c.keyName)
	}

	password, err := c.password("Enter password: ", true)
	if err != nil {
		return err
	}
	params := wallet.StandardScryptParams
	if light, _ := cmd.Flags().GetBool("light-kdf"); light {
		params = wallet.LightScryptParams
	}
	doc, err := w.Keystore(password, params)
	if err != nil {
		return err
	}
	if err := kd.Store(c.keyName, doc); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Key stored: %s\n", c.keyName)
	fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\n", w.AddressString())
	return nil
}

func newKeysCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored keys",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored keys and their addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kd, err := c.keyDir()
			if err != nil {
				return err
			}
			names, err := kd.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No keys found.")
				return nil
			}
			for _, name := range names {
				doc, err := kd.Read(name)
				if err != nil {
					return err
				}
				addr, err := wallet.KeystoreAddress(doc)
				if err != nil {
					fmt.Fprintf(out, "%-16s  (unreadable: %v)\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%-16s  %s\n", name, addr.Bech32(c.network().HRP()))
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Fprintf(cmd.ErrOrStderr(), "Delete key %q? Funds are lost without a backup. [y/N] ", args[0])
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					return fmt.Errorf("aborted")
				}
			}
			kd, err := c.keyDir()
			if err != nil {
				return err
			}
			if err := kd.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
	del.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(list, del)
	return cmd
}
