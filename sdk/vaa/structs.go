package vaa

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type (
	// VAA is a verifiable action approval of the Wormhole protocol
	VAA struct {
		// Version of the VAA schema
		Version uint8
		// GuardianSetIndex is the index of the guardian set that signed this VAA
		GuardianSetIndex uint32
		// Signatures of the guardians, in ascending guardian index order
		Signatures []*Signature

		// Timestamp when the VAA was created
		Timestamp time.Time
		// Nonce of the VAA
		Nonce uint32
		// Sequence of the VAA
		Sequence uint64
		// ConsistencyLevel of the VAA
		ConsistencyLevel uint8
		// EmitterChain the VAA was emitted on
		EmitterChain ChainID
		// EmitterAddress of the contract that emitted the Message
		EmitterAddress Address
		// Payload of the message
		Payload Payload
	}

	// Address is a Wormhole protocol address, it contains the native chain's address. If the address data type of a
	// chain is < 32bytes the value is zero-padded on the left.
	Address [32]byte

	// Signature of a single guardian
	Signature struct {
		// Index of the guardian within the guardian set
		Index uint8
		// Signature data
		Signature SignatureData
	}

	// SignatureData is r || s || v, where v is the recovery id.
	SignatureData [65]byte
)

const (
	SupportedVAAVersion = 0x01

	// HEADER: version (1) + guardian set index (4) + signature count (1)
	// BODY: timestamp (4) + nonce (4) + emitter chain (2) + emitter address (32) + sequence (8) + consistency (1)
	minVAALength = 57

	// signatureRecordLength is the guardian index byte followed by the signature.
	signatureRecordLength = 1 + 65
)

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"0x%s"`, a)), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	addr, err := StringToAddress(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a SignatureData) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, a)), nil
}

func (a SignatureData) String() string {
	return hex.EncodeToString(a[:])
}

// EncodeSignatures writes each signature as its guardian index followed by the 65 signature bytes, in the order given.
func EncodeSignatures(sigs []*Signature) []byte {
	buf := make([]byte, 0, len(sigs)*signatureRecordLength)
	for _, sig := range sigs {
		buf = append(buf, sig.Index)
		buf = append(buf, sig.Signature[:]...)
	}
	return buf
}

// DecodeSignatures reads count signature records from r. Duplicate guardian indices are not rejected here; that is
// left to VerifySignatures.
func DecodeSignatures(r io.Reader, count int) ([]*Signature, error) {
	if count == 0 {
		return nil, nil
	}
	sigs := make([]*Signature, count)
	for i := 0; i < count; i++ {
		var record [signatureRecordLength]byte
		if _, err := io.ReadFull(r, record[:]); err != nil {
			return nil, &DecodeError{Field: fmt.Sprintf("signature [%d]", i), Err: unexpectedEOF(err)}
		}
		sig := &Signature{Index: record[0]}
		copy(sig.Signature[:], record[1:])
		sigs[i] = sig
	}
	return sigs, nil
}

// Unmarshal deserializes the binary representation of a VAA and decodes its payload.
func Unmarshal(data []byte) (*VAA, error) {
	v, payload, err := unmarshal(data)
	if err != nil {
		return nil, err
	}
	v.Payload = DecodePayload(payload)
	return v, nil
}

// UnmarshalEnvelope deserializes a VAA but keeps the payload as raw bytes (an Other payload), so that it is re-emitted
// exactly as received.
func UnmarshalEnvelope(data []byte) (*VAA, error) {
	v, payload, err := unmarshal(data)
	if err != nil {
		return nil, err
	}
	v.Payload = Other{Payload: payload}
	return v, nil
}

func unmarshal(data []byte) (*VAA, []byte, error) {
	if len(data) < minVAALength {
		return nil, nil, fmt.Errorf("VAA is too short")
	}
	v := &VAA{}

	v.Version = data[0]
	if v.Version != SupportedVAAVersion {
		return nil, nil, fmt.Errorf("unsupported VAA version: %d", v.Version)
	}

	reader := bytes.NewReader(data[1:])

	if err := binary.Read(reader, binary.BigEndian, &v.GuardianSetIndex); err != nil {
		return nil, nil, &DecodeError{Field: "guardian set index", Err: err}
	}

	lenSignatures, err := reader.ReadByte()
	if err != nil {
		return nil, nil, &DecodeError{Field: "signature length", Err: err}
	}

	v.Signatures, err = DecodeSignatures(reader, int(lenSignatures))
	if err != nil {
		return nil, nil, err
	}

	payload, err := unmarshalBody(reader, v)
	if err != nil {
		return nil, nil, err
	}
	return v, payload, nil
}

// unmarshalBody reads the BODY fields into v and returns whatever follows as the payload.
func unmarshalBody(reader *bytes.Reader, v *VAA) ([]byte, error) {
	unixSeconds := uint32(0)
	if err := binary.Read(reader, binary.BigEndian, &unixSeconds); err != nil {
		return nil, &DecodeError{Field: "timestamp", Err: unexpectedEOF(err)}
	}
	v.Timestamp = time.Unix(int64(unixSeconds), 0)

	if err := binary.Read(reader, binary.BigEndian, &v.Nonce); err != nil {
		return nil, &DecodeError{Field: "nonce", Err: unexpectedEOF(err)}
	}

	if err := binary.Read(reader, binary.BigEndian, &v.EmitterChain); err != nil {
		return nil, &DecodeError{Field: "emitter chain", Err: unexpectedEOF(err)}
	}

	if _, err := io.ReadFull(reader, v.EmitterAddress[:]); err != nil {
		return nil, &DecodeError{Field: "emitter address", Err: unexpectedEOF(err)}
	}

	if err := binary.Read(reader, binary.BigEndian, &v.Sequence); err != nil {
		return nil, &DecodeError{Field: "sequence", Err: unexpectedEOF(err)}
	}

	if err := binary.Read(reader, binary.BigEndian, &v.ConsistencyLevel); err != nil {
		return nil, &DecodeError{Field: "consistency level", Err: unexpectedEOF(err)}
	}

	// VAAs may have a 0 length payload
	payload := make([]byte, reader.Len())
	if _, err := io.ReadFull(reader, payload); err != nil {
		return nil, &DecodeError{Field: "payload", Err: err}
	}
	return payload, nil
}

// unexpectedEOF reports running out of input inside a fixed-width field as truncation.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Marshal returns the binary representation of the VAA
func (v *VAA) Marshal() ([]byte, error) {
	if len(v.Signatures) > 255 {
		return nil, fmt.Errorf("too many signatures: %d (max 255)", len(v.Signatures))
	}

	body, err := v.serializeBody()
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	MustWrite(buf, binary.BigEndian, v.Version)
	MustWrite(buf, binary.BigEndian, v.GuardianSetIndex)
	MustWrite(buf, binary.BigEndian, uint8(len(v.Signatures))) // #nosec G115 -- checked above
	buf.Write(EncodeSignatures(v.Signatures))
	buf.Write(body)

	return buf.Bytes(), nil
}

// Serialize returns the hex encoding of Marshal, the form the CLI prints and on-chain submission tools accept.
func (v *VAA) Serialize() (string, error) {
	bz, err := v.Marshal()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bz), nil
}

// implement encoding.BinaryMarshaler interface for the VAA struct
func (v VAA) MarshalBinary() ([]byte, error) {
	return v.Marshal()
}

// implement encoding.BinaryUnmarshaler interface for the VAA struct
func (v *VAA) UnmarshalBinary(data []byte) error {
	vaa, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*v = *vaa
	return nil
}

/*
SECURITY: Do not change this code! Changing it could result in two different hashes for
the same observation. But xDapps rely on the hash of an observation for replay protection.
*/
func (v *VAA) serializeBody() ([]byte, error) {
	var payload []byte
	if v.Payload != nil {
		var err error
		if payload, err = v.Payload.Serialize(); err != nil {
			return nil, fmt.Errorf("failed to serialize payload: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	MustWrite(buf, binary.BigEndian, uint32(v.Timestamp.Unix())) // #nosec G115 -- This conversion is safe until year 2106
	MustWrite(buf, binary.BigEndian, v.Nonce)
	MustWrite(buf, binary.BigEndian, v.EmitterChain)
	buf.Write(v.EmitterAddress[:])
	MustWrite(buf, binary.BigEndian, v.Sequence)
	MustWrite(buf, binary.BigEndian, v.ConsistencyLevel)
	buf.Write(payload)

	return buf.Bytes(), nil
}

func doubleKeccak(bz []byte) common.Hash {
	// In order to save space in the solana signature verification instruction, we hash twice so we only need to pass in
	// the first hash (32 bytes) vs the full body data.
	return crypto.Keccak256Hash(crypto.Keccak256Hash(bz).Bytes())
}

// SigningDigest returns the hash of the vaa hash to be signed directly.
// This is used for signature generation and verification
func (v *VAA) SigningDigest() (common.Hash, error) {
	body, err := v.serializeBody()
	if err != nil {
		return common.Hash{}, err
	}
	return doubleKeccak(body), nil
}

// HexDigest returns the 0x-prefixed hex-encoded digest.
func (v *VAA) HexDigest() (string, error) {
	digest, err := v.SigningDigest()
	if err != nil {
		return "", err
	}
	return digest.Hex(), nil
}

// MessageID returns a human-readable emitter_chain/emitter_address/sequence tuple.
func (v *VAA) MessageID() string {
	return fmt.Sprintf("%d/%s/%d", v.EmitterChain, v.EmitterAddress, v.Sequence)
}

// MustWrite calls binary.Write and panics on errors
func MustWrite(w io.Writer, order binary.ByteOrder, data interface{}) {
	if err := binary.Write(w, order, data); err != nil {
		panic(fmt.Errorf("failed to write binary data: %v", data).Error())
	}
}

// StringToAddress converts a hex-encoded address into a vaa.Address
func StringToAddress(value string) (Address, error) {
	var address Address

	// Trim any preceding "0x" to the address
	value = strings.TrimPrefix(value, "0x")

	// Make sure we have enough to decode
	if len(value) < 2 {
		return address, fmt.Errorf("value must be at least 1 byte")
	}

	res, err := hex.DecodeString(value)
	if err != nil {
		return address, err
	}

	return BytesToAddress(res)
}

// BytesToAddress left-pads b to 32 bytes.
func BytesToAddress(b []byte) (Address, error) {
	var address Address
	if len(b) > 32 {
		return address, fmt.Errorf("value must be no more than 32 bytes")
	}

	copy(address[32-len(b):], b)
	return address, nil
}
