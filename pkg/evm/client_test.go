package evm

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wormhole-foundation/worm/pkg/devnet"
	"github.com/wormhole-foundation/worm/sdk/vaa"
)

var coreAddress = devnet.GanacheWormholeContractAddress

// fakeBackend answers view calls by packing canned outputs with the real contract ABI. Methods the tests do not
// exercise fall through to the nil embedded Backend and panic.
type fakeBackend struct {
	Backend

	mu        sync.Mutex
	abi       abi.ABI
	responses map[string][]interface{}
	failures  map[string]error
	calls     map[string]int
	sent      []*types.Transaction
	status    uint64
}

func newFakeBackend(contractABI abi.ABI) *fakeBackend {
	return &fakeBackend{
		abi:       contractABI,
		responses: make(map[string][]interface{}),
		failures:  make(map[string]error),
		calls:     make(map[string]int),
		status:    types.ReceiptStatusSuccessful,
	}
}

func (f *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	method, err := f.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls[method.Name]++
	if err := f.failures[method.Name]; err != nil {
		delete(f.failures, method.Name)
		return nil, err
	}
	out, ok := f.responses[method.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return method.Outputs.Pack(out...)
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) StorageAt(context.Context, common.Address, common.Hash, *big.Int) ([]byte, error) {
	return common.LeftPadBytes(common.HexToAddress("0x1234").Bytes(), 32), nil
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(1337), nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 100000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return &types.Receipt{Status: f.status, BlockNumber: big.NewInt(2), GasUsed: 21000}, nil
}

func TestCurrentGuardianSet(t *testing.T) {
	backend := newFakeBackend(coreContractABI)
	keys := []common.Address{devnet.GuardianAddress(0), devnet.GuardianAddress(1)}
	backend.responses["getCurrentGuardianSetIndex"] = []interface{}{uint32(3)}
	backend.responses["getGuardianSet"] = []interface{}{guardianSet{Keys: keys, ExpirationTime: 0}}

	c := NewClient(backend)
	index, gs, err := c.CurrentGuardianSet(context.Background(), coreAddress)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), index)
	assert.Equal(t, keys, gs)
}

func TestCallRetriesTransientErrors(t *testing.T) {
	backend := newFakeBackend(coreContractABI)
	backend.responses["getCurrentGuardianSetIndex"] = []interface{}{uint32(0)}
	backend.responses["getGuardianSet"] = []interface{}{guardianSet{Keys: []common.Address{devnet.GuardianAddress(0)}}}
	backend.failures["getCurrentGuardianSetIndex"] = errors.New("connection reset by peer")

	c := NewClient(backend, WithRetries(2))
	_, _, err := c.CurrentGuardianSet(context.Background(), coreAddress)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls["getCurrentGuardianSetIndex"])
}

func TestCallDoesNotRetryReverts(t *testing.T) {
	backend := newFakeBackend(coreContractABI)

	c := NewClient(backend, WithRetries(5))
	_, _, err := c.CurrentGuardianSet(context.Background(), coreAddress)
	require.Error(t, err)
	assert.ErrorContains(t, err, "execution reverted")
	assert.Equal(t, 1, backend.calls["getCurrentGuardianSetIndex"])
}

type vmSignature struct {
	R             [32]byte
	S             [32]byte
	V             uint8
	GuardianIndex uint8
}

type vm struct {
	Version          uint8
	Timestamp        uint32
	Nonce            uint32
	EmitterChainId   uint16
	EmitterAddress   [32]byte
	Sequence         uint64
	ConsistencyLevel uint8
	Payload          []byte
	GuardianSetIndex uint32
	Signatures       []vmSignature
	Hash             [32]byte
}

func TestParseAndVerifyVM(t *testing.T) {
	tests := []struct {
		label  string
		valid  bool
		reason string
	}{
		{label: "valid", valid: true, reason: ""},
		{label: "invalid", valid: false, reason: "VM signature invalid"},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			backend := newFakeBackend(coreContractABI)
			backend.responses["parseAndVerifyVM"] = []interface{}{vm{Version: 1, Signatures: []vmSignature{}}, tc.valid, tc.reason}

			valid, reason, err := NewClient(backend).ParseAndVerifyVM(context.Background(), coreAddress, []byte{1})
			require.NoError(t, err)
			assert.Equal(t, tc.valid, valid)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

func TestSubmit(t *testing.T) {
	backend := newFakeBackend(submitContractABI)
	c := NewClient(backend)

	hash, err := c.Submit(context.Background(), devnet.EthereumKey(), coreAddress, MethodSubmitNewGuardianSet, []byte{0x01, 0x02})
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	assert.Equal(t, tx.Hash(), hash)
	assert.Equal(t, coreAddress, *tx.To())
	assert.Equal(t, uint64(7), tx.Nonce())

	method, err := submitContractABI.MethodById(tx.Data()[:4])
	require.NoError(t, err)
	assert.Equal(t, MethodSubmitNewGuardianSet, method.Name)

	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, args[0])
}

func TestSubmitReverted(t *testing.T) {
	backend := newFakeBackend(submitContractABI)
	backend.status = types.ReceiptStatusFailed

	_, err := NewClient(backend).Submit(context.Background(), devnet.EthereumKey(), coreAddress, MethodUpgrade, []byte{1})
	assert.ErrorContains(t, err, "reverted")
}

func TestSubmitUnknownMethod(t *testing.T) {
	_, err := NewClient(newFakeBackend(submitContractABI)).Submit(context.Background(), devnet.EthereumKey(), coreAddress, "selfdestruct", nil)
	assert.ErrorIs(t, err, ErrNoMethod)
}

func TestQueryCore(t *testing.T) {
	backend := newFakeBackend(coreContractABI)
	keys := []common.Address{devnet.GuardianAddress(0)}
	backend.responses["chainId"] = []interface{}{uint16(2)}
	backend.responses["governanceChainId"] = []interface{}{uint16(1)}
	backend.responses["governanceContract"] = []interface{}{[32]byte(vaa.GovernanceEmitter)}
	backend.responses["messageFee"] = []interface{}{big.NewInt(0)}
	backend.responses["getGuardianSetExpiry"] = []interface{}{uint32(86400)}
	backend.responses["getCurrentGuardianSetIndex"] = []interface{}{uint32(1)}
	backend.responses["getGuardianSet"] = []interface{}{guardianSet{Keys: keys}}

	info, err := NewClient(backend).QueryContract(context.Background(), vaa.ChainIDEthereum, vaa.ModuleCore, coreAddress)
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress("0x1234"), info.Implementation)
	assert.Equal(t, vaa.ChainIDEthereum, *info.ChainID)
	assert.Equal(t, vaa.ChainIDSolana, *info.GovernanceChainID)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000004", info.GovernanceContract)
	assert.Equal(t, "0", info.MessageFee)
	assert.Empty(t, info.EvmChainID, "evmChainId reverts on old deployments")
	assert.Equal(t, uint32(1), *info.CurrentGuardianSetIndex)
	assert.Len(t, info.GuardianSet, 2)
	assert.Equal(t, keys, info.GuardianSet[1].Keys)
}

func TestQueryTokenBridge(t *testing.T) {
	backend := newFakeBackend(bridgeContractABI)
	solanaEmitter := common.HexToHash("ec7372995d5cc8732397fb0ad35c0121e0eaa90d26f828a534cab54391b3a4f5")
	backend.responses["wormhole"] = []interface{}{coreAddress}
	backend.responses["tokenImplementation"] = []interface{}{common.HexToAddress("0x01")}
	backend.responses["chainId"] = []interface{}{uint16(2)}
	backend.responses["evmChainId"] = []interface{}{big.NewInt(1)}
	backend.responses["governanceChainId"] = []interface{}{uint16(1)}
	backend.responses["governanceContract"] = []interface{}{[32]byte(vaa.GovernanceEmitter)}
	backend.responses["finality"] = []interface{}{uint8(1)}
	backend.responses["WETH"] = []interface{}{common.HexToAddress("0x02")}
	// Every chain reports the same registration, which is enough to check the self exclusion.
	backend.responses["bridgeContracts"] = []interface{}{[32]byte(solanaEmitter)}

	info, err := NewClient(backend).QueryContract(context.Background(), vaa.ChainIDEthereum, vaa.ModuleTokenBridge, coreAddress)
	require.NoError(t, err)

	assert.Equal(t, "1", info.EvmChainID)
	assert.Equal(t, uint8(1), *info.Finality)
	assert.Equal(t, common.HexToAddress("0x02"), *info.WETH)
	assert.Equal(t, "0x"+solanaEmitter.Hex()[2:], info.Registrations["solana"])
	assert.NotContains(t, info.Registrations, "ethereum")
	assert.NotContains(t, info.Registrations, "unset")
	assert.Nil(t, info.GuardianSet)
}

func TestQueryUnknownModule(t *testing.T) {
	_, err := NewClient(newFakeBackend(coreContractABI)).QueryContract(context.Background(), vaa.ChainIDEthereum, vaa.Module("Bogus"), coreAddress)
	assert.ErrorContains(t, err, "unknown module")
}
