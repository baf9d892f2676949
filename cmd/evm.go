package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
)

func (c *cli) evmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evm",
		Short: "EVM utilities",
	}
	cmd.AddCommand(c.addressFromSecretCmd(), c.evmChainsCmd(), c.evmInfoCmd())
	return cmd
}

func (c *cli) addressFromSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address-from-secret [SECRET]",
		Short: "Compute a 20 byte eth address from a 32 byte private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.HexToECDSA(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid secret: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), crypto.PubkeyToAddress(key.PublicKey).Hex())
			return nil
		},
	}
}

func (c *cli) evmChainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "Return all EVM chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chainNames(vaa.PlatformEVM), " "))
			return nil
		},
	}
}

func (c *cli) evmInfoCmd() *cobra.Command {
	var (
		target             evmTarget
		moduleName         string
		implementationOnly bool
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Query info about the on-chain state of the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := parseModule(moduleName, allModules)
			if err != nil {
				return err
			}
			chain, contract, rpc, err := target.resolve(module, c.rpcOverride)
			if err != nil {
				return err
			}

			logger := c.logger.With(zap.Stringer("chain", chain), zap.String("module", string(module)))
			client, err := c.dialEVM(cmd.Context(), rpc, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			info, err := client.QueryContract(cmd.Context(), chain, module, contract)
			if err != nil {
				return err
			}
			if implementationOnly {
				fmt.Fprintln(cmd.OutOrStdout(), info.Implementation.Hex())
				return nil
			}

			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	f := cmd.Flags()
	target.addFlags(f, "")
	f.StringVarP(&moduleName, "module", "m", "", "Module to query")
	f.BoolVarP(&implementationOnly, "implementation-only", "i", false, "Only print the implementation address")
	markRequired(cmd, "chain", "module", "network")
	return cmd
}
