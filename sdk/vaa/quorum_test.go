package vaa

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateQuorum(t *testing.T) {
	type Test struct {
		numGuardians int
		quorumResult int
		shouldPanic  bool
	}

	tests := []Test{
		{numGuardians: 0, quorumResult: 1},
		{numGuardians: 1, quorumResult: 1},
		{numGuardians: 2, quorumResult: 2},
		{numGuardians: 3, quorumResult: 3},
		{numGuardians: 4, quorumResult: 3},
		{numGuardians: 5, quorumResult: 4},
		{numGuardians: 7, quorumResult: 5},
		{numGuardians: 13, quorumResult: 9},
		{numGuardians: 19, quorumResult: 13},
		{numGuardians: 100, quorumResult: 67},

		{numGuardians: -1, shouldPanic: true},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.shouldPanic {
				assert.Panics(t, func() { CalculateQuorum(tc.numGuardians) })
			} else {
				assert.Equal(t, tc.quorumResult, CalculateQuorum(tc.numGuardians))
			}
		})
	}
}

func guardianSet(t *testing.T, n int) ([]*ecdsa.PrivateKey, []common.Address) {
	t.Helper()
	keys := make([]*ecdsa.PrivateKey, n)
	addrs := make([]common.Address, n)
	for i := range keys {
		k, err := crypto.GenerateKey()
		require.NoError(t, err)
		keys[i] = k
		addrs[i] = crypto.PubkeyToAddress(k.PublicKey)
	}
	return keys, addrs
}

func signedBy(t *testing.T, keys []*ecdsa.PrivateKey, indices ...uint8) *VAA {
	t.Helper()
	v := getVaa()
	gk := make([]GuardianKey, len(indices))
	for i, idx := range indices {
		gk[i] = GuardianKey{Index: idx, Key: keys[idx]}
	}
	sigs, err := Sign(gk, &v)
	require.NoError(t, err)
	v.Signatures = sigs
	return &v
}

func TestVerify(t *testing.T) {
	keys, addrs := guardianSet(t, 4)

	t.Run("quorum", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1, 3)
		assert.NoError(t, v.Verify(addrs))
	})

	t.Run("all guardians", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1, 2, 3)
		assert.NoError(t, v.Verify(addrs))
	})

	t.Run("no guardians", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1, 2)
		assert.ErrorIs(t, v.Verify(nil), ErrNoGuardians)
	})

	t.Run("not signed", func(t *testing.T) {
		v := getVaa()
		assert.ErrorIs(t, v.Verify(addrs), ErrNotSigned)
	})

	t.Run("below quorum", func(t *testing.T) {
		v := signedBy(t, keys, 0, 2)
		err := v.Verify(addrs)
		assert.ErrorIs(t, err, ErrNoQuorum)
		assert.ErrorContains(t, err, "have 2 signatures, need 3 of 4 guardians")
	})

	t.Run("wrong guardian set", func(t *testing.T) {
		_, other := guardianSet(t, 4)
		v := signedBy(t, keys, 0, 1, 2)
		assert.ErrorIs(t, v.Verify(other), ErrBadSignature)
	})

	t.Run("payload tampered after signing", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1, 2)
		v.Nonce++
		assert.ErrorIs(t, v.Verify(addrs), ErrBadSignature)
	})
}

func TestVerifySignatures(t *testing.T) {
	keys, addrs := guardianSet(t, 4)

	t.Run("out of order", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1, 2)
		v.Signatures[0], v.Signatures[1] = v.Signatures[1], v.Signatures[0]
		err := v.VerifySignatures(addrs)
		assert.ErrorIs(t, err, ErrBadSignature)
		assert.ErrorContains(t, err, "increasing order")
	})

	t.Run("duplicate index", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1)
		v.Signatures = append(v.Signatures, v.Signatures[1])
		assert.ErrorIs(t, v.VerifySignatures(addrs), ErrBadSignature)
	})

	t.Run("same guardian under two indices", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1)
		dup := append([]common.Address{}, addrs...)
		dup[2] = dup[1]
		v.Signatures = append(v.Signatures, &Signature{Index: 2, Signature: v.Signatures[1].Signature})
		err := v.VerifySignatures(dup)
		assert.ErrorIs(t, err, ErrBadSignature)
		assert.ErrorContains(t, err, "signed twice")
	})

	t.Run("index out of range", func(t *testing.T) {
		v := signedBy(t, keys, 0, 3)
		err := v.VerifySignatures(addrs[:3])
		assert.ErrorIs(t, err, ErrBadSignature)
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("more signatures than guardians", func(t *testing.T) {
		v := signedBy(t, keys, 0, 1, 2)
		assert.ErrorIs(t, v.VerifySignatures(addrs[:2]), ErrBadSignature)
	})

	t.Run("subset", func(t *testing.T) {
		v := signedBy(t, keys, 1)
		assert.NoError(t, v.VerifySignatures(addrs))
	})
}
