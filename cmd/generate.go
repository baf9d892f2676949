package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wormhole-foundation/worm/pkg/address"
	"github.com/wormhole-foundation/worm/sdk/vaa"
)

// generateFlags are the flag values of the generate subcommands. Flag sets shared between subcommands write to the
// same fields.
type generateFlags struct {
	guardianSecret string

	chain           string
	contractAddress string
	module          string

	emitterChain   string
	emitterAddress string
	tokenAddress   string
	decimals       uint8
	symbol         string
	name           string

	evmChainID string
	newChainID uint16

	relayProviderAddress string

	newGuardianSetIndex uint32
	guardianAddresses   string

	fee       string
	amount    string
	recipient string
}

func (c *cli) generateCmd() *cobra.Command {
	var g generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate VAAs (devnet and testnet only)",
	}
	cmd.PersistentFlags().StringVarP(&g.guardianSecret, "guardian-secret", "g", "", "Guardians' secret keys (CSV)")
	//nolint:errcheck // the flag is defined above
	cmd.MarkPersistentFlagRequired("guardian-secret")

	governanceFlagSet := pflag.NewFlagSet("governance", pflag.ExitOnError)
	governanceFlagSet.StringVarP(&g.chain, "chain", "c", "", "Target chain")
	governanceFlagSet.StringVarP(&g.contractAddress, "contract-address", "a", "", "Contract address (native format of the chain)")

	moduleFlagSet := pflag.NewFlagSet("module", pflag.ExitOnError)
	moduleFlagSet.StringVarP(&g.module, "module", "m", "", "Module name")

	coreFlagSet := pflag.NewFlagSet("core", pflag.ExitOnError)
	coreFlagSet.StringVarP(&g.chain, "chain", "c", "", "Target chain (default all chains)")

	registration := &cobra.Command{
		Use:   "registration",
		Short: "Generate registration VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			module, err := parseModule(g.module, bridgeModules)
			if err != nil {
				return nil, nil, err
			}
			chain, err := parseChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			emitter, err := address.Parse(chain, g.contractAddress)
			if err != nil {
				return nil, nil, err
			}
			return vaa.RegisterChain{Owner: module, Chain: vaa.ChainIDUnset, EmitterChain: chain, EmitterAddress: emitter}, nil, nil
		}),
	}
	registration.Flags().AddFlagSet(governanceFlagSet)
	registration.Flags().AddFlagSet(moduleFlagSet)
	markRequired(registration, "chain", "contract-address", "module")

	upgrade := &cobra.Command{
		Use:   "upgrade",
		Short: "Generate contract upgrade VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			module, err := parseModule(g.module, allModules)
			if err != nil {
				return nil, nil, err
			}
			chain, err := parseChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			impl, err := address.ParseCode(chain, g.contractAddress)
			if err != nil {
				return nil, nil, err
			}
			return vaa.ContractUpgrade{Owner: module, Chain: chain, Address: impl}, nil, nil
		}),
	}
	upgrade.Flags().AddFlagSet(governanceFlagSet)
	upgrade.Flags().AddFlagSet(moduleFlagSet)
	markRequired(upgrade, "chain", "contract-address", "module")

	attestation := &cobra.Command{
		Use:   "attestation",
		Short: "Generate a token attestation VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			emitterChain, err := parseChain(g.emitterChain)
			if err != nil {
				return nil, nil, err
			}
			emitter, err := address.Parse(emitterChain, g.emitterAddress)
			if err != nil {
				return nil, nil, err
			}
			tokenChain, err := parseChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			token, err := address.Parse(tokenChain, g.tokenAddress)
			if err != nil {
				return nil, nil, err
			}
			symbol, err := vaa.PadString(g.symbol)
			if err != nil {
				return nil, nil, err
			}
			name, err := vaa.PadString(g.name)
			if err != nil {
				return nil, nil, err
			}
			payload := vaa.TokenBridgeAttestMeta{
				TokenAddress: token,
				TokenChain:   tokenChain,
				Decimals:     g.decimals,
				Symbol:       symbol,
				Name:         name,
			}
			return payload, []vaa.Option{vaa.WithEmitter(emitterChain, emitter)}, nil
		}),
	}
	af := attestation.Flags()
	af.StringVarP(&g.emitterChain, "emitter-chain", "e", "", "Emitter chain of the VAA")
	af.StringVarP(&g.emitterAddress, "emitter-address", "f", "", "Emitter address of the VAA")
	af.StringVarP(&g.chain, "chain", "c", "", "Token's chain")
	af.StringVarP(&g.tokenAddress, "token-address", "a", "", "Token's address")
	af.Uint8VarP(&g.decimals, "decimals", "d", 0, "Token's decimals")
	af.StringVarP(&g.symbol, "symbol", "s", "", "Token's symbol")
	af.StringVarP(&g.name, "name", "n", "", "Token's name")
	markRequired(attestation, "emitter-chain", "emitter-address", "chain", "token-address", "decimals", "symbol", "name")

	recoverChainID := &cobra.Command{
		Use:   "recover-chain-id",
		Short: "Generate a recover chain ID VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			module, err := parseModule(g.module, recoverableModules)
			if err != nil {
				return nil, nil, err
			}
			evmChainID, err := uint256.FromDecimal(g.evmChainID)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid EVM chain ID %q: %w", g.evmChainID, err)
			}
			return vaa.RecoverChainId{Owner: module, EvmChainId: evmChainID, NewChainId: vaa.ChainID(g.newChainID)}, nil, nil
		}),
	}
	recoverChainID.Flags().AddFlagSet(moduleFlagSet)
	recoverChainID.Flags().StringVarP(&g.evmChainID, "evm-chain-id", "e", "", "EVM chain ID to set")
	recoverChainID.Flags().Uint16VarP(&g.newChainID, "new-chain-id", "c", 0, "New chain ID to set")
	markRequired(recoverChainID, "module", "evm-chain-id", "new-chain-id")

	setDefaultDeliveryProvider := &cobra.Command{
		Use:   "set-default-delivery-provider",
		Short: "Sets the default delivery provider for the Wormhole Relayer contract",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			chain, err := parseChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			provider, err := address.Parse(chain, g.relayProviderAddress)
			if err != nil {
				return nil, nil, err
			}
			return vaa.SetDefaultDeliveryProvider{Chain: chain, RelayProviderAddress: provider}, nil, nil
		}),
	}
	setDefaultDeliveryProvider.Flags().StringVarP(&g.chain, "chain", "c", "", "Chain of the Wormhole Relayer contract")
	setDefaultDeliveryProvider.Flags().StringVarP(&g.relayProviderAddress, "relay-provider-address", "p", "", "Address of the delivery provider contract")
	markRequired(setDefaultDeliveryProvider, "chain", "relay-provider-address")

	guardianSetUpgrade := &cobra.Command{
		Use:   "guardian-set-upgrade",
		Short: "Generate a guardian set upgrade VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			chain, err := optionalChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			var guardians []common.Address
			for _, a := range splitCSV(g.guardianAddresses) {
				if !common.IsHexAddress(a) {
					return nil, nil, fmt.Errorf("invalid guardian address %q", a)
				}
				guardians = append(guardians, common.HexToAddress(a))
			}
			if len(guardians) == 0 {
				return nil, nil, vaa.ErrNoGuardians
			}
			return vaa.GuardianSetUpgrade{Chain: chain, NewGuardianSetIndex: g.newGuardianSetIndex, NewGuardianSet: guardians}, nil, nil
		}),
	}
	guardianSetUpgrade.Flags().AddFlagSet(coreFlagSet)
	guardianSetUpgrade.Flags().Uint32VarP(&g.newGuardianSetIndex, "new-guardian-set-index", "i", 0, "Index of the new guardian set")
	guardianSetUpgrade.Flags().StringVar(&g.guardianAddresses, "guardian-address", "", "Guardians' public addresses (CSV)")
	markRequired(guardianSetUpgrade, "new-guardian-set-index", "guardian-address")

	setMessageFee := &cobra.Command{
		Use:   "set-message-fee",
		Short: "Generate a core bridge message fee VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			chain, err := optionalChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			fee, err := uint256.FromDecimal(g.fee)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid fee %q: %w", g.fee, err)
			}
			return vaa.SetMessageFee{Chain: chain, Fee: fee}, nil, nil
		}),
	}
	setMessageFee.Flags().AddFlagSet(coreFlagSet)
	setMessageFee.Flags().StringVar(&g.fee, "fee", "", "New message fee in the smallest unit of the native token")
	markRequired(setMessageFee, "fee")

	transferFees := &cobra.Command{
		Use:   "transfer-fees",
		Short: "Generate a core bridge fee payout VAA",
		Args:  cobra.NoArgs,
		RunE: c.signAndPrint(&g, func() (vaa.Payload, []vaa.Option, error) {
			chain, err := optionalChain(g.chain)
			if err != nil {
				return nil, nil, err
			}
			amount, err := uint256.FromDecimal(g.amount)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid amount %q: %w", g.amount, err)
			}
			var recipient vaa.Address
			if chain == vaa.ChainIDUnset {
				recipient, err = vaa.StringToAddress(g.recipient)
			} else {
				recipient, err = address.Parse(chain, g.recipient)
			}
			if err != nil {
				return nil, nil, fmt.Errorf("invalid recipient %q: %w", g.recipient, err)
			}
			return vaa.TransferFees{Chain: chain, Amount: amount, Recipient: recipient}, nil, nil
		}),
	}
	transferFees.Flags().AddFlagSet(coreFlagSet)
	transferFees.Flags().StringVar(&g.amount, "amount", "", "Amount to pay out")
	transferFees.Flags().StringVar(&g.recipient, "recipient", "", "Recipient (native format of the chain, hex when no chain is given)")
	markRequired(transferFees, "amount", "recipient")

	cmd.AddCommand(
		registration,
		upgrade,
		attestation,
		recoverChainID,
		setDefaultDeliveryProvider,
		guardianSetUpgrade,
		setMessageFee,
		transferFees,
	)
	return cmd
}

func optionalChain(s string) (vaa.ChainID, error) {
	if s == "" {
		return vaa.ChainIDUnset, nil
	}
	return parseChain(s)
}

// signAndPrint returns a RunE that wraps the payload built by build into a VAA, signs it with the guardian secrets
// and prints it in hex.
func (c *cli) signAndPrint(g *generateFlags, build func() (vaa.Payload, []vaa.Option, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		keys, err := vaa.KeysFromSecrets(splitCSV(g.guardianSecret))
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return vaa.ErrNoGuardians
		}

		payload, opts, err := build()
		if err != nil {
			return err
		}
		v, err := vaa.NewGovernanceVAA(payload, opts...)
		if err != nil {
			return err
		}
		if v.Signatures, err = vaa.Sign(keys, v); err != nil {
			return err
		}

		out, err := v.Serialize()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
}
