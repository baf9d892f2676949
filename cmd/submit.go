package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/worm/pkg/submit"
	"github.com/wormhole-foundation/worm/sdk"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
)

func (c *cli) submitCmd() *cobra.Command {
	var (
		network         sdk.Network
		chainName       string
		contractAddress string
		rpc             string
	)

	cmd := &cobra.Command{
		Use:   "submit [VAA]",
		Short: "Execute a VAA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := vaa.DecodeInput(args[0])
			if err != nil {
				return err
			}
			v, err := vaa.Unmarshal(raw)
			if err != nil {
				return err
			}
			if _, unknown := v.Payload.(vaa.Other); unknown {
				return errors.New("cannot submit a VAA with an unknown payload")
			}

			payload, err := vaa.MarshalPayloadJSON(v.Payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))

			flagChain := vaa.ChainIDUnset
			if chainName != "" {
				if flagChain, err = parseChain(chainName); err != nil {
					return err
				}
			}
			chain, err := submit.ResolveChain(v.Payload, flagChain)
			if err != nil {
				return err
			}

			endpoint := rpc
			if endpoint == "" {
				endpoint = c.rpcOverride(chain)
			}

			submitter, err := c.newSubmitter(chain, c.logger)
			if err != nil {
				return err
			}
			res, err := submitter.Submit(cmd.Context(), submit.Request{
				Network:         network,
				Chain:           chain,
				VAA:             v,
				Raw:             raw,
				ContractAddress: contractAddress,
				RPC:             endpoint,
			})
			if err != nil {
				return err
			}

			c.logger.Info("Submitted VAA",
				zap.Stringer("chain", res.Chain),
				zap.String("contract", res.Contract),
				zap.String("method", res.Method),
				zap.String("txHash", res.TxHash))
			return nil
		},
	}

	f := cmd.Flags()
	networkFlag(f, &network)
	f.StringVarP(&chainName, "chain", "c", "", "Chain to submit to (required if the VAA does not name one)")
	f.StringVarP(&contractAddress, "contract-address", "a", "", "Contract to submit the VAA to (overrides the network default)")
	f.StringVar(&rpc, "rpc", "", "RPC endpoint (overrides the network default)")
	markRequired(cmd, "network")
	return cmd
}
