package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wormhole-foundation/worm/pkg/devnet"
	"github.com/wormhole-foundation/worm/pkg/evm"
	"github.com/wormhole-foundation/worm/sdk/vaa"
)

func TestLookupCommands(t *testing.T) {
	type test struct {
		args   []string
		output string
	}

	tests := []test{
		{args: []string{"chain-id", "ethereum"}, output: "2"},
		{args: []string{"chain-id", "Solana"}, output: "1"},
		{args: []string{"chain-id", "4"}, output: "4"},
		{args: []string{"contract", "devnet", "ethereum", "Core"}, output: "0xC89Ce4735882C9F0f0FE26686c53074E09B0D550"},
		{args: []string{"contract", "mainnet", "solana", "TokenBridge"}, output: "wormDTUJ6AWPNvk59vGQbDvGJmqbDTdgWgAqcLBCgUb"},
		{args: []string{"contract", "mainnet", "solana", "TokenBridge", "--emitter"}, output: "ec7372995d5cc8732397fb0ad35c0121e0eaa90d26f828a534cab54391b3a4f5"},
		{args: []string{"contract", "devnet", "ethereum", "Core", "-e"}, output: "000000000000000000000000c89ce4735882c9f0f0fe26686c53074e09b0d550"},
		{args: []string{"rpc", "devnet", "ethereum"}, output: "http://localhost:8545"},
		{args: []string{"evm", "address-from-secret", "0x" + devnet.GuardianSecret(0)}, output: devnet.GuardianAddress(0).Hex()},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			c, _ := testCLI(t)
			stdout, _, err := execute(c, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.output+"\n", stdout)
		})
	}
}

func TestLookupErrors(t *testing.T) {
	type test struct {
		args   []string
		errMsg string
	}

	tests := []test{
		{args: []string{"chain-id", "nowhere"}, errMsg: "unknown chain: nowhere"},
		{args: []string{"chain-id", "65000"}, errMsg: "no known ChainID for input 65000"},
		{args: []string{"contract", "moonnet", "ethereum", "Core"}, errMsg: "invalid network"},
		{args: []string{"contract", "mainnet", "ethereum", "Portal"}, errMsg: `invalid module "Portal"`},
		{args: []string{"contract", "mainnet", "terra", "WormholeRelayer"}, errMsg: "not found"},
		{args: []string{"rpc", "devnet"}, errMsg: "accepts 2 arg(s)"},
		{args: []string{"evm", "address-from-secret", "xyz"}, errMsg: "invalid secret"},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			c, _ := testCLI(t)
			_, _, err := execute(c, tc.args...)
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestEVMChains(t *testing.T) {
	c, _ := testCLI(t)
	stdout, _, err := execute(c, "evm", "chains")
	require.NoError(t, err)

	names := strings.Fields(stdout)
	assert.Equal(t, "ethereum", names[0])
	assert.Contains(t, names, "bsc")
	assert.NotContains(t, names, "solana")
	for _, name := range names {
		chain, err := vaa.ChainIDFromString(name)
		require.NoError(t, err)
		assert.Equal(t, vaa.PlatformEVM, chain.Platform(), name)
	}
}

func TestEVMInfo(t *testing.T) {
	index := uint32(0)
	info := &evm.ContractInfo{
		Address:                 devnet.GanacheWormholeContractAddress,
		Implementation:          common.HexToAddress("0x1234"),
		CurrentGuardianSetIndex: &index,
		GuardianSet:             map[uint32]evm.GuardianSetInfo{0: {Keys: []common.Address{devnet.GuardianAddress(0)}}},
	}

	f := &fakeEVM{info: info}
	c, _ := testCLI(t)
	withFakeEVM(c, f)

	stdout, _, err := execute(c, "evm", "info", "-c", "ethereum", "-m", "Core", "-n", "devnet")
	require.NoError(t, err)
	assert.Equal(t, vaa.ModuleCore, f.queried)
	assert.Equal(t, devnet.GanacheWormholeContractAddress, f.core)
	assert.Equal(t, "http://localhost:8545", f.rpc)
	assert.True(t, f.closed)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &parsed))
	assert.Equal(t, float64(0), parsed["currentGuardianSetIndex"])
	assert.NotContains(t, parsed, "WETH")

	c, _ = testCLI(t)
	withFakeEVM(c, f)
	stdout, _, err = execute(c, "evm", "info", "-c", "ethereum", "-m", "TokenBridge", "-n", "devnet", "-a", "0x0000000000000000000000000000000000000abc", "-i")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x1234").Hex()+"\n", stdout)
	assert.Equal(t, vaa.ModuleTokenBridge, f.queried)
	assert.Equal(t, common.HexToAddress("0xabc"), f.core)
}

func TestEVMInfoRequiresFlags(t *testing.T) {
	c, _ := testCLI(t)
	withFakeEVM(c, &fakeEVM{})
	_, _, err := execute(c, "evm", "info", "-c", "ethereum")
	assert.ErrorContains(t, err, "required flag(s)")
}

func TestRPCOverride(t *testing.T) {
	t.Setenv("ETHEREUM_RPC", "http://my-node:8545")

	c, _ := testCLI(t)
	stdout, _, err := execute(c, "rpc", "mainnet", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "http://my-node:8545\n", stdout)

	f := &fakeEVM{info: &evm.ContractInfo{}}
	c, _ = testCLI(t)
	withFakeEVM(c, f)
	_, _, err = execute(c, "evm", "info", "-c", "ethereum", "-m", "Core", "-n", "devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://my-node:8545", f.rpc)

	c, _ = testCLI(t)
	withFakeEVM(c, f)
	_, _, err = execute(c, "evm", "info", "-c", "ethereum", "-m", "Core", "-n", "devnet", "--rpc", "http://flag:8545")
	require.NoError(t, err)
	assert.Equal(t, "http://flag:8545", f.rpc)
}
