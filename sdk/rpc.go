package sdk

import (
	"fmt"

	"github.com/wormhole-foundation/worm/sdk/vaa"
)

// DefaultRPC returns a public RPC endpoint for chain. Operators are expected to override these with their own nodes.
func DefaultRPC(network Network, chain vaa.ChainID) (string, error) {
	table, ok := publicRPCs[network]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidNetwork, network)
	}
	rpc, ok := table[chain]
	if !ok {
		return "", fmt.Errorf("%w: no default rpc for %s on %s", ErrNotFound, chain, network)
	}
	return rpc, nil
}

var publicRPCs = map[Network]map[vaa.ChainID]string{
	Mainnet: {
		vaa.ChainIDSolana:    "https://api.mainnet-beta.solana.com",
		vaa.ChainIDEthereum:  "https://ethereum-rpc.publicnode.com",
		vaa.ChainIDBSC:       "https://bsc-rpc.publicnode.com",
		vaa.ChainIDPolygon:   "https://rpc.ankr.com/polygon",
		vaa.ChainIDAvalanche: "https://rpc.ankr.com/avalanche",
		vaa.ChainIDAlgorand:  "https://mainnet-api.algonode.cloud",
		vaa.ChainIDFantom:    "https://rpc.ftm.tools/",
		vaa.ChainIDKlaytn:    "https://public-node-api.klaytnapi.com/v1/cypress",
		vaa.ChainIDCelo:      "https://forno.celo.org",
		vaa.ChainIDNear:      "https://rpc.mainnet.near.org",
		vaa.ChainIDAptos:     "https://fullnode.mainnet.aptoslabs.com/v1",
		vaa.ChainIDSui:       "https://fullnode.mainnet.sui.io:443",
		vaa.ChainIDPythNet:   "http://api.pythnet.pyth.network:8899/",
		vaa.ChainIDMoonbeam:  "https://rpc.api.moonbeam.network",
		vaa.ChainIDArbitrum:  "https://arb1.arbitrum.io/rpc",
		vaa.ChainIDOptimism:  "https://mainnet.optimism.io",
		vaa.ChainIDBase:      "https://mainnet.base.org",
		vaa.ChainIDScroll:    "https://rpc.ankr.com/scroll",
	},
	Testnet: {
		vaa.ChainIDSolana:          "https://api.devnet.solana.com",
		vaa.ChainIDBSC:             "https://data-seed-prebsc-1-s1.binance.org:8545",
		vaa.ChainIDAvalanche:       "https://rpc.ankr.com/avalanche_fuji",
		vaa.ChainIDAlgorand:        "https://testnet-api.algonode.cloud",
		vaa.ChainIDFantom:          "https://rpc.testnet.fantom.network",
		vaa.ChainIDCelo:            "https://alfajores-forno.celo-testnet.org",
		vaa.ChainIDNear:            "https://rpc.testnet.near.org",
		vaa.ChainIDAptos:           "https://fullnode.testnet.aptoslabs.com/v1",
		vaa.ChainIDSui:             "https://fullnode.testnet.sui.io:443",
		vaa.ChainIDSepolia:         "https://rpc.ankr.com/eth_sepolia",
		vaa.ChainIDHolesky:         "https://rpc.ankr.com/eth_holesky",
		vaa.ChainIDArbitrumSepolia: "https://arbitrum-sepolia.publicnode.com",
		vaa.ChainIDBaseSepolia:     "https://sepolia.base.org",
		vaa.ChainIDOptimismSepolia: "https://rpc.ankr.com/optimism_sepolia",
		vaa.ChainIDPolygonSepolia:  "https://rpc-amoy.polygon.technology/",
	},
	Devnet: {
		vaa.ChainIDSolana:    "http://127.0.0.1:8899",
		vaa.ChainIDEthereum:  "http://localhost:8545",
		vaa.ChainIDBSC:       "http://localhost:8546",
		vaa.ChainIDAlgorand:  "http://localhost",
		vaa.ChainIDWormchain: "http://localhost:1319",
	},
}

// WormscanURL returns the base URL of the Wormscan API, which serves guardian observations. Devnet has none.
func WormscanURL(network Network) (string, error) {
	switch network {
	case Mainnet:
		return "https://api.wormholescan.io", nil
	case Testnet:
		return "https://api.testnet.wormholescan.io", nil
	case Devnet:
		return "", fmt.Errorf("%w: wormscan is not available on devnet", ErrNotFound)
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidNetwork, network)
}
