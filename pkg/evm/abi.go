package evm

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// coreABI is the read-only surface of the core contract that worm uses.
const coreABI = `[
	{"inputs":[],"name":"chainId","outputs":[{"internalType":"uint16","name":"","type":"uint16"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"evmChainId","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getCurrentGuardianSetIndex","outputs":[{"internalType":"uint32","name":"","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint32","name":"index","type":"uint32"}],"name":"getGuardianSet","outputs":[{"components":[{"internalType":"address[]","name":"keys","type":"address[]"},{"internalType":"uint32","name":"expirationTime","type":"uint32"}],"internalType":"struct Structs.GuardianSet","name":"","type":"tuple"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getGuardianSetExpiry","outputs":[{"internalType":"uint32","name":"","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"governanceChainId","outputs":[{"internalType":"uint16","name":"","type":"uint16"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"governanceContract","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"messageFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"bytes","name":"encodedVM","type":"bytes"}],"name":"parseAndVerifyVM","outputs":[{"components":[{"internalType":"uint8","name":"version","type":"uint8"},{"internalType":"uint32","name":"timestamp","type":"uint32"},{"internalType":"uint32","name":"nonce","type":"uint32"},{"internalType":"uint16","name":"emitterChainId","type":"uint16"},{"internalType":"bytes32","name":"emitterAddress","type":"bytes32"},{"internalType":"uint64","name":"sequence","type":"uint64"},{"internalType":"uint8","name":"consistencyLevel","type":"uint8"},{"internalType":"bytes","name":"payload","type":"bytes"},{"internalType":"uint32","name":"guardianSetIndex","type":"uint32"},{"components":[{"internalType":"bytes32","name":"r","type":"bytes32"},{"internalType":"bytes32","name":"s","type":"bytes32"},{"internalType":"uint8","name":"v","type":"uint8"},{"internalType":"uint8","name":"guardianIndex","type":"uint8"}],"internalType":"struct Structs.Signature[]","name":"signatures","type":"tuple[]"},{"internalType":"bytes32","name":"hash","type":"bytes32"}],"internalType":"struct Structs.VM","name":"vm","type":"tuple"},{"internalType":"bool","name":"valid","type":"bool"},{"internalType":"string","name":"reason","type":"string"}],"stateMutability":"view","type":"function"}
]`

// bridgeABI covers the getters of the token and NFT bridges. WETH only exists on the token bridge.
const bridgeABI = `[
	{"inputs":[],"name":"WETH","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint16","name":"chainId_","type":"uint16"}],"name":"bridgeContracts","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"chainId","outputs":[{"internalType":"uint16","name":"","type":"uint16"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"evmChainId","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"finality","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"governanceChainId","outputs":[{"internalType":"uint16","name":"","type":"uint16"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"governanceContract","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"tokenImplementation","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"wormhole","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const relayerABI = `[
	{"inputs":[],"name":"getDefaultDeliveryProvider","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"uint16","name":"chainId","type":"uint16"}],"name":"getRegisteredWormholeRelayerContract","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"}
]`

// Entry points that take a single signed VAA.
const (
	MethodSubmitNewGuardianSet            = "submitNewGuardianSet"
	MethodSubmitContractUpgrade           = "submitContractUpgrade"
	MethodSubmitRecoverChainId            = "submitRecoverChainId"
	MethodSubmitSetMessageFee             = "submitSetMessageFee"
	MethodSubmitTransferFees              = "submitTransferFees"
	MethodUpgrade                         = "upgrade"
	MethodRegisterChain                   = "registerChain"
	MethodCompleteTransfer                = "completeTransfer"
	MethodCompleteTransferWithPayload     = "completeTransferWithPayload"
	MethodCreateWrapped                   = "createWrapped"
	MethodRegisterWormholeRelayerContract = "registerWormholeRelayerContract"
	MethodSetDefaultDeliveryProvider      = "setDefaultDeliveryProvider"
)

var (
	coreContractABI    = mustParseABI(coreABI)
	bridgeContractABI  = mustParseABI(bridgeABI)
	relayerContractABI = mustParseABI(relayerABI)
	submitContractABI  = mustParseABI(vaaMethodsABI(
		MethodSubmitNewGuardianSet,
		MethodSubmitContractUpgrade,
		MethodSubmitRecoverChainId,
		MethodSubmitSetMessageFee,
		MethodSubmitTransferFees,
		MethodUpgrade,
		MethodRegisterChain,
		MethodCompleteTransfer,
		MethodCompleteTransferWithPayload,
		MethodCreateWrapped,
		MethodRegisterWormholeRelayerContract,
		MethodSetDefaultDeliveryProvider,
	))
)

// vaaMethodsABI declares a nonpayable method(bytes) for every name.
func vaaMethodsABI(names ...string) string {
	entries := make([]string, len(names))
	for i, name := range names {
		entries[i] = fmt.Sprintf(`{"inputs":[{"internalType":"bytes","name":"encodedVM","type":"bytes"}],"name":%q,"outputs":[],"stateMutability":"nonpayable","type":"function"}`, name)
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Errorf("invalid contract ABI: %w", err))
	}
	return parsed
}
