package vaa

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devnetGuardianSecret = "cfb12303a19cde580bb4dd771639b0d26bc68353645571a8cff516ab2ee113a0"

var devnetGuardianAddress = common.HexToAddress("0xbeFA429d57cD18b7F8A4d91A2da9AB4AF05d0FBe")

func TestRecoverAddress(t *testing.T) {
	digest, err := hex.DecodeString("99656f88302bda18573212d4812daeea7d39f8af695db1fbc4d99fd94f552606")
	require.NoError(t, err)
	sig, err := hex.DecodeString("6da03c5e56cb15aeeceadc1e17a45753ab4dc0ec7bf6a75ca03143ed4a294f6f61bc3f478a457833e43084ecd7c985bf2f55a55f168aac0e030fc49e845e497101")
	require.NoError(t, err)

	got, err := RecoverAddress(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, "0x6FbEBc898F403E4773E95feB15E80C9A99c8348d", got.Hex())

	ethStyle := append([]byte{}, sig...)
	ethStyle[64] += 27
	got, err = RecoverAddress(digest, ethStyle)
	require.NoError(t, err)
	assert.Equal(t, "0x6FbEBc898F403E4773E95feB15E80C9A99c8348d", got.Hex())
}

func TestRecoverAddressInvalid(t *testing.T) {
	digest := make([]byte, 32)
	sig := make([]byte, 65)

	tests := []struct {
		name   string
		digest []byte
		sig    []byte
	}{
		{name: "short digest", digest: digest[:31], sig: sig},
		{name: "short signature", digest: digest, sig: sig[:64]},
		{name: "bad recovery id", digest: digest, sig: append(append([]byte{}, sig[:64]...), 5)},
		{name: "zero signature", digest: digest, sig: sig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RecoverAddress(tc.digest, tc.sig)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestSignAndRecover(t *testing.T) {
	keys, err := KeysFromSecrets([]string{devnetGuardianSecret})
	require.NoError(t, err)

	v := getVaa()
	sigs, err := Sign(keys, &v)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, uint8(0), sigs[0].Index)

	digest, err := v.SigningDigest()
	require.NoError(t, err)
	signer, err := RecoverAddress(digest.Bytes(), sigs[0].Signature[:])
	require.NoError(t, err)
	assert.Equal(t, devnetGuardianAddress, signer)
}

func TestSignOrdersByIndex(t *testing.T) {
	keys, _ := guardianSet(t, 3)
	v := getVaa()
	sigs, err := Sign([]GuardianKey{{Index: 2, Key: keys[2]}, {Index: 0, Key: keys[0]}}, &v)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.Equal(t, uint8(0), sigs[0].Index)
	assert.Equal(t, uint8(2), sigs[1].Index)
}

func TestSignRejects(t *testing.T) {
	keys, _ := guardianSet(t, 2)
	v := getVaa()

	_, err := Sign([]GuardianKey{{Index: 1, Key: keys[0]}, {Index: 1, Key: keys[1]}}, &v)
	assert.ErrorContains(t, err, "duplicate guardian index 1")

	_, err = Sign([]GuardianKey{{Index: 0}}, &v)
	assert.ErrorContains(t, err, "no key for guardian 0")
}

func TestAddSignature(t *testing.T) {
	key, err := crypto.HexToECDSA(devnetGuardianSecret)
	require.NoError(t, err)

	v := getVaa()
	require.NoError(t, v.AddSignature(key, 0))
	require.Len(t, v.Signatures, 1)
	assert.NoError(t, v.Verify([]common.Address{devnetGuardianAddress}))
}

func TestKeysFromSecrets(t *testing.T) {
	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherSecret := hex.EncodeToString(crypto.FromECDSA(other))

	t.Run("positional", func(t *testing.T) {
		keys, err := KeysFromSecrets([]string{devnetGuardianSecret, "0x" + otherSecret})
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, uint8(0), keys[0].Index)
		assert.Equal(t, uint8(1), keys[1].Index)
		assert.Equal(t, devnetGuardianAddress, crypto.PubkeyToAddress(keys[0].Key.PublicKey))
		assert.Zero(t, other.D.Cmp(keys[1].Key.D))
	})

	t.Run("indexed", func(t *testing.T) {
		keys, err := KeysFromSecrets([]string{"7:" + devnetGuardianSecret, "3:" + otherSecret})
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, uint8(7), keys[0].Index)
		assert.Equal(t, uint8(3), keys[1].Index)
	})

	tests := []struct {
		name    string
		secrets []string
		err     string
	}{
		{name: "mixed forms", secrets: []string{devnetGuardianSecret, "1:" + otherSecret}, err: "either all carry an index or none"},
		{name: "index too large", secrets: []string{"256:" + devnetGuardianSecret}, err: "invalid guardian index"},
		{name: "bad index", secrets: []string{"x:" + devnetGuardianSecret}, err: "invalid guardian index"},
		{name: "bad secret", secrets: []string{"abcd"}, err: "invalid guardian secret at position 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := KeysFromSecrets(tc.secrets)
			assert.ErrorContains(t, err, tc.err)
		})
	}
}
