package vaa

import (
	"fmt"
	"strconv"
	"strings"
)

// ChainID of a Wormhole chain
type ChainID uint16

// Platform is the execution environment of a chain. It decides how native addresses are encoded and how a VAA
// is submitted.
type Platform uint8

const (
	PlatformUnset Platform = iota
	PlatformEVM
	PlatformSolana
	PlatformCosmWasm
	PlatformAlgorand
	PlatformNear
	PlatformAptos
	PlatformSui
	PlatformBtc
)

func (p Platform) String() string {
	switch p {
	case PlatformUnset:
		return "unset"
	case PlatformEVM:
		return "evm"
	case PlatformSolana:
		return "solana"
	case PlatformCosmWasm:
		return "cosmwasm"
	case PlatformAlgorand:
		return "algorand"
	case PlatformNear:
		return "near"
	case PlatformAptos:
		return "aptos"
	case PlatformSui:
		return "sui"
	case PlatformBtc:
		return "btc"
	default:
		return fmt.Sprintf("unknown platform: %d", uint8(p))
	}
}

// NOTE: Please keep these in numerical order.
const (
	ChainIDUnset           ChainID = 0
	ChainIDSolana          ChainID = 1
	ChainIDEthereum        ChainID = 2
	ChainIDTerra           ChainID = 3
	ChainIDBSC             ChainID = 4
	ChainIDPolygon         ChainID = 5
	ChainIDAvalanche       ChainID = 6
	ChainIDOasis           ChainID = 7
	ChainIDAlgorand        ChainID = 8
	ChainIDAurora          ChainID = 9
	ChainIDFantom          ChainID = 10
	ChainIDKarura          ChainID = 11
	ChainIDAcala           ChainID = 12
	ChainIDKlaytn          ChainID = 13
	ChainIDCelo            ChainID = 14
	ChainIDNear            ChainID = 15
	ChainIDMoonbeam        ChainID = 16
	ChainIDNeon            ChainID = 17
	ChainIDTerra2          ChainID = 18
	ChainIDInjective       ChainID = 19
	ChainIDOsmosis         ChainID = 20
	ChainIDSui             ChainID = 21
	ChainIDAptos           ChainID = 22
	ChainIDArbitrum        ChainID = 23
	ChainIDOptimism        ChainID = 24
	ChainIDGnosis          ChainID = 25
	ChainIDPythNet         ChainID = 26
	ChainIDXpla            ChainID = 28
	ChainIDBtc             ChainID = 29
	ChainIDBase            ChainID = 30
	ChainIDSei             ChainID = 32
	ChainIDRootstock       ChainID = 33
	ChainIDScroll          ChainID = 34
	ChainIDMantle          ChainID = 35
	ChainIDBlast           ChainID = 36
	ChainIDXLayer          ChainID = 37
	ChainIDLinea           ChainID = 38
	ChainIDBerachain       ChainID = 39
	ChainIDSeiEVM          ChainID = 40
	ChainIDSnaxchain       ChainID = 43
	ChainIDWormchain       ChainID = 3104
	ChainIDCosmoshub       ChainID = 4000
	ChainIDEvmos           ChainID = 4001
	ChainIDKujira          ChainID = 4002
	ChainIDNeutron         ChainID = 4003
	ChainIDCelestia        ChainID = 4004
	ChainIDStargaze        ChainID = 4005
	ChainIDSeda            ChainID = 4006
	ChainIDDymension       ChainID = 4007
	ChainIDProvenance      ChainID = 4008
	ChainIDSepolia         ChainID = 10002
	ChainIDArbitrumSepolia ChainID = 10003
	ChainIDBaseSepolia     ChainID = 10004
	ChainIDOptimismSepolia ChainID = 10005
	ChainIDHolesky         ChainID = 10006
	ChainIDPolygonSepolia  ChainID = 10007
)

type chainInfo struct {
	id       ChainID
	name     string
	platform Platform
}

var chains = []chainInfo{
	{ChainIDUnset, "unset", PlatformUnset},
	{ChainIDSolana, "solana", PlatformSolana},
	{ChainIDEthereum, "ethereum", PlatformEVM},
	{ChainIDTerra, "terra", PlatformCosmWasm},
	{ChainIDBSC, "bsc", PlatformEVM},
	{ChainIDPolygon, "polygon", PlatformEVM},
	{ChainIDAvalanche, "avalanche", PlatformEVM},
	{ChainIDOasis, "oasis", PlatformEVM},
	{ChainIDAlgorand, "algorand", PlatformAlgorand},
	{ChainIDAurora, "aurora", PlatformEVM},
	{ChainIDFantom, "fantom", PlatformEVM},
	{ChainIDKarura, "karura", PlatformEVM},
	{ChainIDAcala, "acala", PlatformEVM},
	{ChainIDKlaytn, "klaytn", PlatformEVM},
	{ChainIDCelo, "celo", PlatformEVM},
	{ChainIDNear, "near", PlatformNear},
	{ChainIDMoonbeam, "moonbeam", PlatformEVM},
	{ChainIDNeon, "neon", PlatformEVM},
	{ChainIDTerra2, "terra2", PlatformCosmWasm},
	{ChainIDInjective, "injective", PlatformCosmWasm},
	{ChainIDOsmosis, "osmosis", PlatformCosmWasm},
	{ChainIDSui, "sui", PlatformSui},
	{ChainIDAptos, "aptos", PlatformAptos},
	{ChainIDArbitrum, "arbitrum", PlatformEVM},
	{ChainIDOptimism, "optimism", PlatformEVM},
	{ChainIDGnosis, "gnosis", PlatformEVM},
	{ChainIDPythNet, "pythnet", PlatformSolana},
	{ChainIDXpla, "xpla", PlatformCosmWasm},
	{ChainIDBtc, "btc", PlatformBtc},
	{ChainIDBase, "base", PlatformEVM},
	{ChainIDSei, "sei", PlatformCosmWasm},
	{ChainIDRootstock, "rootstock", PlatformEVM},
	{ChainIDScroll, "scroll", PlatformEVM},
	{ChainIDMantle, "mantle", PlatformEVM},
	{ChainIDBlast, "blast", PlatformEVM},
	{ChainIDXLayer, "xlayer", PlatformEVM},
	{ChainIDLinea, "linea", PlatformEVM},
	{ChainIDBerachain, "berachain", PlatformEVM},
	{ChainIDSeiEVM, "seievm", PlatformEVM},
	{ChainIDSnaxchain, "snaxchain", PlatformEVM},
	{ChainIDWormchain, "wormchain", PlatformCosmWasm},
	{ChainIDCosmoshub, "cosmoshub", PlatformCosmWasm},
	{ChainIDEvmos, "evmos", PlatformCosmWasm},
	{ChainIDKujira, "kujira", PlatformCosmWasm},
	{ChainIDNeutron, "neutron", PlatformCosmWasm},
	{ChainIDCelestia, "celestia", PlatformCosmWasm},
	{ChainIDStargaze, "stargaze", PlatformCosmWasm},
	{ChainIDSeda, "seda", PlatformCosmWasm},
	{ChainIDDymension, "dymension", PlatformCosmWasm},
	{ChainIDProvenance, "provenance", PlatformCosmWasm},
	{ChainIDSepolia, "sepolia", PlatformEVM},
	{ChainIDArbitrumSepolia, "arbitrum_sepolia", PlatformEVM},
	{ChainIDBaseSepolia, "base_sepolia", PlatformEVM},
	{ChainIDOptimismSepolia, "optimism_sepolia", PlatformEVM},
	{ChainIDHolesky, "holesky", PlatformEVM},
	{ChainIDPolygonSepolia, "polygon_sepolia", PlatformEVM},
}

var (
	chainsByID   = make(map[ChainID]chainInfo, len(chains))
	chainsByName = make(map[string]chainInfo, len(chains))
)

func init() {
	for _, c := range chains {
		chainsByID[c.id] = c
		chainsByName[c.name] = c
	}
}

func (c ChainID) String() string {
	if info, ok := chainsByID[c]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown chain ID: %d", uint16(c))
}

// Platform returns the execution environment of the chain, or PlatformUnset for unknown chains.
func (c ChainID) Platform() Platform {
	return chainsByID[c].platform
}

// Known reports whether the chain is registered.
func (c ChainID) Known() bool {
	_, ok := chainsByID[c]
	return ok
}

// ChainIDFromString converts from a chain's full name (e.g. "solana") to its corresponding ChainID.
func ChainIDFromString(s string) (ChainID, error) {
	info, ok := chainsByName[strings.ToLower(s)]
	if !ok {
		return ChainIDUnset, fmt.Errorf("unknown chain: %s", s)
	}
	return info.id, nil
}

// StringToKnownChainID accepts either a chain name or a decimal chain ID and returns the registered ChainID.
// Unknown IDs are an error.
func StringToKnownChainID(s string) (ChainID, error) {
	if id, err := ChainIDFromString(s); err == nil {
		return id, nil
	}

	u16, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return ChainIDUnset, fmt.Errorf("unknown chain: %s", s)
	}

	id := ChainID(u16)
	if !id.Known() {
		return ChainIDUnset, fmt.Errorf("no known ChainID for input %d", u16)
	}
	return id, nil
}

// AllChainIDs returns every registered chain, including ChainIDUnset, in numerical order.
func AllChainIDs() []ChainID {
	ids := make([]ChainID, 0, len(chains))
	for _, c := range chains {
		ids = append(ids, c.id)
	}
	return ids
}

// ChainIDsForPlatform returns the registered chains running on the given platform, in numerical order.
func ChainIDsForPlatform(p Platform) []ChainID {
	var ids []ChainID
	for _, c := range chains {
		if c.platform == p {
			ids = append(ids, c.id)
		}
	}
	return ids
}
