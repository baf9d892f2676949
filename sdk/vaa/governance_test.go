package vaa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGovernanceVAADefaults(t *testing.T) {
	payload := ContractUpgrade{Owner: ModuleCore, Chain: ChainIDEthereum, Address: addr}
	v, err := NewGovernanceVAA(payload)
	require.NoError(t, err)

	assert.Equal(t, uint8(SupportedVAAVersion), v.Version)
	assert.Equal(t, uint32(0), v.GuardianSetIndex)
	assert.Empty(t, v.Signatures)
	assert.Equal(t, int64(1), v.Timestamp.Unix())
	assert.Equal(t, uint32(1), v.Nonce)
	assert.Equal(t, uint8(0), v.ConsistencyLevel)
	assert.Equal(t, ChainIDSolana, v.EmitterChain)
	assert.Equal(t, GovernanceEmitter, v.EmitterAddress)
	assert.Equal(t, payload, v.Payload)
}

func TestNewGovernanceVAARandomSequence(t *testing.T) {
	seen := map[uint64]struct{}{}
	for i := 0; i < 8; i++ {
		v, err := NewGovernanceVAA(Other{})
		require.NoError(t, err)
		seen[v.Sequence] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestNewGovernanceVAAOptions(t *testing.T) {
	ts := time.Unix(1000, 0)
	v, err := NewGovernanceVAA(Other{Payload: []byte("aaaa")},
		WithTimestamp(ts),
		WithNonce(7),
		WithSequence(1337),
		WithConsistencyLevel(32),
		WithGuardianSetIndex(3),
		WithEmitter(ChainIDEthereum, addr),
	)
	require.NoError(t, err)

	assert.Equal(t, &VAA{
		Version:          SupportedVAAVersion,
		GuardianSetIndex: 3,
		Timestamp:        ts,
		Nonce:            7,
		Sequence:         1337,
		ConsistencyLevel: 32,
		EmitterChain:     ChainIDEthereum,
		EmitterAddress:   addr,
		Payload:          Other{Payload: []byte("aaaa")},
	}, v)
}
