package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/worm/pkg/address"
	"github.com/wormhole-foundation/worm/sdk"
	"github.com/wormhole-foundation/worm/sdk/vaa"
)

func (c *cli) chainIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain-id [CHAIN]",
		Short: "Print the wormhole chain ID integer associated with the specified chain name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := parseChain(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uint16(chain))
			return nil
		},
	}
}

func (c *cli) contractCmd() *cobra.Command {
	var emitter bool

	cmd := &cobra.Command{
		Use:   "contract [NETWORK] [CHAIN] [MODULE]",
		Short: "Print contract address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := sdk.NetworkFromString(args[0])
			if err != nil {
				return err
			}
			chain, err := parseChain(args[1])
			if err != nil {
				return err
			}
			module, err := parseModule(args[2], allModules)
			if err != nil {
				return err
			}

			addr, err := sdk.ContractAddress(network, chain, module)
			if err != nil {
				return err
			}
			if emitter {
				e, err := address.Emitter(chain, addr)
				if err != nil {
					return err
				}
				addr = e.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&emitter, "emitter", "e", false, "Print in emitter address format")
	return cmd
}

func (c *cli) rpcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rpc [NETWORK] [CHAIN]",
		Short: "Print RPC address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := sdk.NetworkFromString(args[0])
			if err != nil {
				return err
			}
			chain, err := parseChain(args[1])
			if err != nil {
				return err
			}
			rpc := c.rpcOverride(chain)
			if rpc == "" {
				if rpc, err = sdk.DefaultRPC(network, chain); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), rpc)
			return nil
		},
	}
}

// chainNames lists the names of the chains on platform p in chain ID order.
func chainNames(p vaa.Platform) []string {
	ids := vaa.ChainIDsForPlatform(p)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}
