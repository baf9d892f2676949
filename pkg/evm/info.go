package evm

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
)

// implementationSlot is the EIP-1967 storage slot holding the address of a proxy's implementation.
var implementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

type GuardianSetInfo struct {
	Keys   []common.Address `json:"keys"`
	Expiry uint32           `json:"expiry"`
}

// ContractInfo is the on-chain state of a Wormhole contract. Fields that do not apply to the queried module are
// omitted.
type ContractInfo struct {
	Address                 common.Address             `json:"address"`
	Implementation          common.Address             `json:"implementation"`
	Wormhole                *common.Address            `json:"wormhole,omitempty"`
	TokenImplementation     *common.Address            `json:"tokenImplementation,omitempty"`
	ChainID                 *vaa.ChainID               `json:"chainId,omitempty"`
	EvmChainID              string                     `json:"evmChainId,omitempty"`
	Finality                *uint8                     `json:"finality,omitempty"`
	GovernanceChainID       *vaa.ChainID               `json:"governanceChainId,omitempty"`
	GovernanceContract      string                     `json:"governanceContract,omitempty"`
	MessageFee              string                     `json:"messageFee,omitempty"`
	CurrentGuardianSetIndex *uint32                    `json:"currentGuardianSetIndex,omitempty"`
	GuardianSetExpiry       *uint32                    `json:"guardianSetExpiry,omitempty"`
	GuardianSet             map[uint32]GuardianSetInfo `json:"guardianSet,omitempty"`
	WETH                    *common.Address            `json:"WETH,omitempty"`
	DefaultDeliveryProvider *common.Address            `json:"defaultDeliveryProvider,omitempty"`
	Registrations           map[string]string          `json:"registrations,omitempty"`
}

// QueryContract reads the state of the module contract deployed at contract on chain.
func (c *Client) QueryContract(ctx context.Context, chain vaa.ChainID, module vaa.Module, contract common.Address) (*ContractInfo, error) {
	impl, err := c.backend.StorageAt(ctx, contract, implementationSlot, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read implementation slot: %w", err)
	}
	info := &ContractInfo{
		Address:        contract,
		Implementation: common.BytesToAddress(impl),
	}

	q := &query{client: c, ctx: ctx, contract: contract}
	switch module {
	case vaa.ModuleCore:
		q.abi = coreContractABI
		c.queryCore(q, info)
	case vaa.ModuleTokenBridge, vaa.ModuleNFTBridge:
		q.abi = bridgeContractABI
		c.queryBridge(q, info, chain, module == vaa.ModuleTokenBridge)
	case vaa.ModuleWormholeRelayer:
		q.abi = relayerContractABI
		info.DefaultDeliveryProvider = q.address("getDefaultDeliveryProvider")
		info.Registrations = q.registrations(chain, "getRegisteredWormholeRelayerContract")
	default:
		return nil, fmt.Errorf("unknown module %q", module)
	}

	if q.err != nil {
		return nil, q.err
	}
	return info, nil
}

func (c *Client) queryCore(q *query, info *ContractInfo) {
	info.ChainID = q.chainID("chainId")
	info.GovernanceChainID = q.chainID("governanceChainId")
	info.GovernanceContract = q.bytes32("governanceContract")
	info.MessageFee = q.uint256("messageFee")
	info.GuardianSetExpiry = q.uint32("getGuardianSetExpiry")
	info.EvmChainID = q.optionalUint256("evmChainId")

	index := q.uint32("getCurrentGuardianSetIndex")
	if q.err != nil {
		return
	}
	info.CurrentGuardianSetIndex = index
	info.GuardianSet = make(map[uint32]GuardianSetInfo, *index+1)
	for i := uint32(0); i <= *index; i++ {
		gs, err := c.guardianSet(q.ctx, q.contract, i)
		if err != nil {
			q.err = err
			return
		}
		info.GuardianSet[i] = GuardianSetInfo{Keys: gs.Keys, Expiry: gs.ExpirationTime}
	}
}

func (c *Client) queryBridge(q *query, info *ContractInfo, chain vaa.ChainID, tokenBridge bool) {
	info.Wormhole = q.address("wormhole")
	info.TokenImplementation = q.address("tokenImplementation")
	info.ChainID = q.chainID("chainId")
	info.EvmChainID = q.optionalUint256("evmChainId")
	info.GovernanceChainID = q.chainID("governanceChainId")
	info.GovernanceContract = q.bytes32("governanceContract")
	if out := q.get("finality"); out != nil {
		f := *abi.ConvertType(out[0], new(uint8)).(*uint8)
		info.Finality = &f
	}
	if tokenBridge {
		info.WETH = q.address("WETH")
	}
	info.Registrations = q.registrations(chain, "bridgeContracts")
}

// query accumulates the first error of a sequence of view calls so the callers can read fields one after another.
type query struct {
	client   *Client
	ctx      context.Context
	abi      abi.ABI
	contract common.Address
	err      error
}

func (q *query) get(method string, args ...interface{}) []interface{} {
	if q.err != nil {
		return nil
	}
	out, err := q.client.call(q.ctx, q.abi, q.contract, method, args...)
	if err != nil {
		q.err = err
		return nil
	}
	return out
}

func (q *query) chainID(method string) *vaa.ChainID {
	out := q.get(method)
	if out == nil {
		return nil
	}
	id := vaa.ChainID(*abi.ConvertType(out[0], new(uint16)).(*uint16))
	return &id
}

func (q *query) uint32(method string) *uint32 {
	out := q.get(method)
	if out == nil {
		return nil
	}
	return abi.ConvertType(out[0], new(uint32)).(*uint32)
}

func (q *query) uint256(method string) string {
	out := q.get(method)
	if out == nil {
		return ""
	}
	return (*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)).String()
}

// optionalUint256 tolerates contracts deployed before method existed.
func (q *query) optionalUint256(method string) string {
	if q.err != nil {
		return ""
	}
	out, err := q.client.call(q.ctx, q.abi, q.contract, method)
	if err != nil {
		q.client.logger.Debug("optional contract method unavailable", zap.String("method", method), zap.Error(err))
		return ""
	}
	return (*abi.ConvertType(out[0], new(*big.Int)).(**big.Int)).String()
}

func (q *query) bytes32(method string, args ...interface{}) string {
	out := q.get(method, args...)
	if out == nil {
		return ""
	}
	b := *abi.ConvertType(out[0], new([32]byte)).(*[32]byte)
	return "0x" + hex.EncodeToString(b[:])
}

func (q *query) address(method string) *common.Address {
	out := q.get(method)
	if out == nil {
		return nil
	}
	return abi.ConvertType(out[0], new(common.Address)).(*common.Address)
}

// registrations lists the emitter registered for every other chain, keyed by chain name. Unregistered chains are left
// out.
func (q *query) registrations(self vaa.ChainID, method string) map[string]string {
	regs := make(map[string]string)
	for _, other := range vaa.AllChainIDs() {
		if other == vaa.ChainIDUnset || other == self {
			continue
		}
		emitter := q.bytes32(method, uint16(other))
		if q.err != nil {
			return nil
		}
		if emitter != "0x"+hex.EncodeToString(make([]byte, 32)) {
			regs[other.String()] = emitter
		}
	}
	return regs
}
