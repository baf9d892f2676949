package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wormhole-foundation/worm/sdk"
	"github.com/wormhole-foundation/worm/sdk/vaa"
)

var (
	allModules    = []vaa.Module{vaa.ModuleCore, vaa.ModuleNFTBridge, vaa.ModuleTokenBridge, vaa.ModuleWormholeRelayer}
	bridgeModules = []vaa.Module{vaa.ModuleNFTBridge, vaa.ModuleTokenBridge, vaa.ModuleWormholeRelayer}
	// Modules whose contracts can be recovered after an EVM fork.
	recoverableModules = []vaa.Module{vaa.ModuleCore, vaa.ModuleNFTBridge, vaa.ModuleTokenBridge}
)

func parseChain(s string) (vaa.ChainID, error) {
	return vaa.StringToKnownChainID(strings.TrimSpace(s))
}

func parseModule(s string, allowed []vaa.Module) (vaa.Module, error) {
	names := make([]string, len(allowed))
	for i, m := range allowed {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
		names[i] = string(m)
	}
	return "", fmt.Errorf("invalid module %q, expected one of %s", s, strings.Join(names, ", "))
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func networkFlag(fs *pflag.FlagSet, n *sdk.Network) {
	fs.VarP(n, "network", "n", "Network (mainnet, testnet, devnet)")
}

// evmTarget is a contract on an EVM chain together with the RPC endpoint used to reach it.
type evmTarget struct {
	network  sdk.Network
	chain    string
	contract string
	rpc      string
}

func (t *evmTarget) addFlags(fs *pflag.FlagSet, defaultChain string) {
	networkFlag(fs, &t.network)
	fs.StringVarP(&t.chain, "chain", "c", defaultChain, "Chain name")
	fs.StringVarP(&t.contract, "contract-address", "a", "", "Contract address (overrides the network default)")
	fs.StringVar(&t.rpc, "rpc", "", "RPC endpoint (overrides the network default)")
}

// resolve fills in the defaults of network for the module contract on the configured chain. rpcOverride is consulted
// before the network's default RPC.
func (t *evmTarget) resolve(module vaa.Module, rpcOverride func(vaa.ChainID) string) (vaa.ChainID, common.Address, string, error) {
	chain, err := parseChain(t.chain)
	if err != nil {
		return vaa.ChainIDUnset, common.Address{}, "", err
	}
	if chain.Platform() != vaa.PlatformEVM {
		return vaa.ChainIDUnset, common.Address{}, "", fmt.Errorf("%s is not an EVM chain", chain)
	}

	contract := t.contract
	if contract == "" {
		if contract, err = sdk.ContractAddress(t.network, chain, module); err != nil {
			return vaa.ChainIDUnset, common.Address{}, "", err
		}
	}
	if !common.IsHexAddress(contract) {
		return vaa.ChainIDUnset, common.Address{}, "", fmt.Errorf("invalid %s contract address %q", chain, contract)
	}

	rpc := t.rpc
	if rpc == "" {
		rpc = rpcOverride(chain)
	}
	if rpc == "" {
		if rpc, err = sdk.DefaultRPC(t.network, chain); err != nil {
			return vaa.ChainIDUnset, common.Address{}, "", err
		}
	}
	return chain, common.HexToAddress(contract), rpc, nil
}

// rpcOverride returns the endpoint configured for chain through the <CHAIN>_RPC environment variable or the
// rpc.<chain> config key, or "" when neither is set.
func (c *cli) rpcOverride(chain vaa.ChainID) string {
	key := "rpc." + chain.String()
	if err := c.v.BindEnv(key, strings.ToUpper(chain.String())+"_RPC"); err != nil {
		return ""
	}
	return c.v.GetString(key)
}

//nolint:errcheck // MarkFlagRequired only fails for flags that do not exist.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		cmd.MarkFlagRequired(name)
	}
}
