package vaa

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addr = Address{0x01, 0x02, 0x03, 0x04}

func getVaa() VAA {
	return VAA{
		Version:          SupportedVAAVersion,
		GuardianSetIndex: 9,
		Signatures:       nil,
		Timestamp:        time.Unix(2837, 0),
		Nonce:            10,
		Sequence:         3,
		ConsistencyLevel: 5,
		EmitterChain:     ChainIDEthereum,
		EmitterAddress:   addr,
		Payload:          Other{Payload: []byte("abcd")},
	}
}

func TestAddress_MarshalJSON(t *testing.T) {
	bs, err := addr.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"0x0102030400000000000000000000000000000000000000000000000000000000"`, string(bs))
}

func TestAddress_UnmarshalJSON(t *testing.T) {
	var a Address
	require.NoError(t, json.Unmarshal([]byte(`"0x0102030400000000000000000000000000000000000000000000000000000000"`), &a))
	assert.Equal(t, addr, a)

	assert.Error(t, json.Unmarshal([]byte(`"0xzz"`), &a))
}

func TestStringToAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Address
		wantErr bool
	}{
		{name: "short is left padded", input: "0x04", want: GovernanceEmitter},
		{name: "no prefix", input: "04", want: GovernanceEmitter},
		{name: "full width", input: "0102030400000000000000000000000000000000000000000000000000000000", want: addr},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: "00" + hex.EncodeToString(addr[:]), wantErr: true},
		{name: "not hex", input: "0xgg", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StringToAddress(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSignatureData_MarshalJSON(t *testing.T) {
	var sig SignatureData
	sig[0] = 0xab
	sig[64] = 0x01
	bs, err := sig.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"ab`+string(bytes.Repeat([]byte("00"), 63))+`01"`, string(bs))
}

func TestMarshalUnmarshal(t *testing.T) {
	v := getVaa()
	v.Signatures = []*Signature{
		{Index: 0, Signature: SignatureData{1}},
		{Index: 4, Signature: SignatureData{2}},
	}

	bz, err := v.Marshal()
	require.NoError(t, err)
	assert.Len(t, bz, 6+2*signatureRecordLength+51+4)

	got, err := Unmarshal(bz)
	require.NoError(t, err)
	assert.Equal(t, &v, got)

	again, err := got.Marshal()
	require.NoError(t, err)
	assert.Equal(t, bz, again)
}

func TestMarshalBinary(t *testing.T) {
	v := getVaa()
	bz, err := v.MarshalBinary()
	require.NoError(t, err)

	var got VAA
	require.NoError(t, got.UnmarshalBinary(bz))
	assert.Equal(t, v, got)
}

func TestSerializeIsHexMarshal(t *testing.T) {
	v := getVaa()
	bz, err := v.Marshal()
	require.NoError(t, err)
	s, err := v.Serialize()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(bz), s)
}

func TestMarshalTooManySignatures(t *testing.T) {
	v := getVaa()
	for i := 0; i < 256; i++ {
		v.Signatures = append(v.Signatures, &Signature{})
	}
	_, err := v.Marshal()
	assert.ErrorContains(t, err, "too many signatures")
}

func TestUnmarshalEmptyPayload(t *testing.T) {
	v := getVaa()
	v.Payload = Other{Payload: []byte{}}
	bz, err := v.Marshal()
	require.NoError(t, err)
	assert.Len(t, bz, minVAALength)

	got, err := Unmarshal(bz)
	require.NoError(t, err)
	assert.Equal(t, Other{Payload: []byte{}}, got.Payload)
}

func TestUnmarshalErrors(t *testing.T) {
	valid, err := getVaaWithSignature().Marshal()
	require.NoError(t, err)

	badVersion := bytes.Clone(valid)
	badVersion[0] = 2

	tests := []struct {
		name  string
		input []byte
		field string
		err   string
	}{
		{name: "empty", input: nil, err: "VAA is too short"},
		{name: "below minimum", input: valid[:minVAALength-1], err: "VAA is too short"},
		{name: "unsupported version", input: badVersion, err: "unsupported VAA version: 2"},
		{name: "truncated signature", input: valid[:60], field: "signature [0]"},
		{name: "truncated body", input: valid[:6+signatureRecordLength+40], field: "emitter address"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal(tc.input)
			require.Error(t, err)
			if tc.field != "" {
				var de *DecodeError
				require.True(t, errors.As(err, &de), "expected a DecodeError, got %v", err)
				assert.Equal(t, tc.field, de.Field)
				assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
				return
			}
			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func getVaaWithSignature() *VAA {
	v := getVaa()
	v.Signatures = []*Signature{{Index: 0, Signature: SignatureData{0xaa}}}
	return &v
}

func TestDecodeSignatures(t *testing.T) {
	sigs := []*Signature{
		{Index: 3, Signature: SignatureData{3}},
		{Index: 3, Signature: SignatureData{4}},
	}
	bz := EncodeSignatures(sigs)
	assert.Len(t, bz, 2*signatureRecordLength)

	got, err := DecodeSignatures(bytes.NewReader(bz), 2)
	require.NoError(t, err)
	assert.Equal(t, sigs, got)

	_, err = DecodeSignatures(bytes.NewReader(bz), 3)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	got, err = DecodeSignatures(bytes.NewReader(nil), 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnsignedVAARoundTrip(t *testing.T) {
	v, err := NewGovernanceVAA(SetMessageFee{Chain: ChainIDEthereum, Fee: uint256.NewInt(1)}, WithSequence(7))
	require.NoError(t, err)
	require.Nil(t, v.Signatures)

	bz, err := v.Marshal()
	require.NoError(t, err)
	got, err := Unmarshal(bz)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestUnmarshalEnvelopeKeepsPayloadBytes(t *testing.T) {
	gsu, err := hex.DecodeString(guardianSetUpgradeVAA)
	require.NoError(t, err)

	v, err := UnmarshalEnvelope(gsu)
	require.NoError(t, err)
	assert.IsType(t, Other{}, v.Payload)

	bz, err := v.Marshal()
	require.NoError(t, err)
	assert.Equal(t, gsu, bz)
}

func TestMessageID(t *testing.T) {
	v := getVaa()
	assert.Equal(t, "2/0102030400000000000000000000000000000000000000000000000000000000/3", v.MessageID())
}

func TestSigningDigestChangesWithBody(t *testing.T) {
	v := getVaa()
	d1, err := v.SigningDigest()
	require.NoError(t, err)

	v.Signatures = []*Signature{{Index: 1}}
	d2, err := v.SigningDigest()
	require.NoError(t, err)
	assert.Equal(t, d1, d2, "signatures are not part of the digest")

	v.Sequence++
	d3, err := v.SigningDigest()
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)

	h, err := v.HexDigest()
	require.NoError(t, err)
	assert.Equal(t, d3.Hex(), h)
}

func TestSigningDigestPayloadError(t *testing.T) {
	v := getVaa()
	v.Payload = SetMessageFee{Chain: ChainIDEthereum}
	_, err := v.SigningDigest()
	assert.ErrorContains(t, err, "message fee is not set")
}

func FuzzUnmarshal(f *testing.F) {
	for _, s := range []string{guardianSetUpgradeVAA, tokenBridgeTransferVAA, nftBridgeTransferVAA} {
		bz, err := hex.DecodeString(s)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(bz)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		v, err := Unmarshal(data)
		if err != nil {
			return
		}
		bz, err := v.Marshal()
		require.NoError(t, err)
		assert.Equal(t, data, bz)
	})
}
