package sdk

import (
	"fmt"

	"github.com/wormhole-foundation/worm/sdk/vaa"
)

// MainnetEvmChainIDs maps Wormhole chains to the EIP-155 chain id used to sign transactions on mainnet.
var MainnetEvmChainIDs = map[vaa.ChainID]int{
	vaa.ChainIDEthereum:  1,
	vaa.ChainIDBSC:       56,
	vaa.ChainIDPolygon:   137,
	vaa.ChainIDAvalanche: 43114,
	vaa.ChainIDOasis:     42262,
	vaa.ChainIDAurora:    1313161554,
	vaa.ChainIDFantom:    250,
	vaa.ChainIDKarura:    686,
	vaa.ChainIDAcala:     787,
	vaa.ChainIDKlaytn:    8217,
	vaa.ChainIDCelo:      42220,
	vaa.ChainIDMoonbeam:  1284,
	vaa.ChainIDArbitrum:  42161,
	vaa.ChainIDOptimism:  10,
	vaa.ChainIDGnosis:    100,
	vaa.ChainIDBase:      8453,
	vaa.ChainIDScroll:    534352,
	vaa.ChainIDMantle:    5000,
	vaa.ChainIDBlast:     81457,
	vaa.ChainIDXLayer:    196,
	vaa.ChainIDLinea:     59144,
	vaa.ChainIDBerachain: 80094,
	vaa.ChainIDSeiEVM:    1329,
}

// TestnetEvmChainIDs maps Wormhole chains to the EIP-155 chain id used to sign transactions on testnet.
var TestnetEvmChainIDs = map[vaa.ChainID]int{
	vaa.ChainIDEthereum:        17000,
	vaa.ChainIDBSC:             97,
	vaa.ChainIDPolygon:         80002,
	vaa.ChainIDAvalanche:       43113,
	vaa.ChainIDFantom:          4002,
	vaa.ChainIDCelo:            44787,
	vaa.ChainIDMoonbeam:        1287,
	vaa.ChainIDSepolia:         11155111,
	vaa.ChainIDArbitrumSepolia: 421614,
	vaa.ChainIDBaseSepolia:     84532,
	vaa.ChainIDOptimismSepolia: 11155420,
	vaa.ChainIDHolesky:         17000,
	vaa.ChainIDPolygonSepolia:  80002,
}

// DevnetEvmChainIDs are the chain ids of the local ganache/anvil nodes.
var DevnetEvmChainIDs = map[vaa.ChainID]int{
	vaa.ChainIDEthereum: 1337,
	vaa.ChainIDBSC:      1397,
}

// IsEvmChainID reports whether the chain is defined as an EVM chain in the specified network.
func IsEvmChainID(network Network, chainID vaa.ChainID) (bool, error) {
	m, err := evmChainIDs(network)
	if err != nil {
		return false, err
	}
	_, exists := m[chainID]
	return exists, nil
}

// EVMChainID returns the expected EVM chain ID associated with the given Wormhole chain ID and network.
func EVMChainID(network Network, chainID vaa.ChainID) (int, error) {
	m, err := evmChainIDs(network)
	if err != nil {
		return 0, err
	}
	id, exists := m[chainID]
	if !exists {
		return 0, fmt.Errorf("%w: no evm chain id for %s on %s", ErrNotFound, chainID, network)
	}
	return id, nil
}

func evmChainIDs(network Network) (map[vaa.ChainID]int, error) {
	switch network {
	case Mainnet:
		return MainnetEvmChainIDs, nil
	case Testnet:
		return TestnetEvmChainIDs, nil
	case Devnet:
		return DevnetEvmChainIDs, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidNetwork, network)
}
