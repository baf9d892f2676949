package vaa

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

var GovernanceEmitter = Address{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4}
var GovernanceChain = ChainIDSolana

// Option adjusts a VAA built by NewGovernanceVAA.
type Option func(*VAA)

func WithTimestamp(t time.Time) Option { return func(v *VAA) { v.Timestamp = t } }
func WithNonce(nonce uint32) Option    { return func(v *VAA) { v.Nonce = nonce } }
func WithSequence(seq uint64) Option   { return func(v *VAA) { v.Sequence = seq } }

func WithConsistencyLevel(level uint8) Option {
	return func(v *VAA) { v.ConsistencyLevel = level }
}

func WithGuardianSetIndex(index uint32) Option {
	return func(v *VAA) { v.GuardianSetIndex = index }
}

// WithEmitter replaces the governance emitter, e.g. for token attestations that are emitted by a bridge contract.
func WithEmitter(chain ChainID, address Address) Option {
	return func(v *VAA) {
		v.EmitterChain = chain
		v.EmitterAddress = address
	}
}

// NewGovernanceVAA wraps payload in an unsigned VAA from the governance emitter. Unless overridden the timestamp and
// nonce are 1, the consistency level and guardian set index are 0, and the sequence is random.
func NewGovernanceVAA(payload Payload, opts ...Option) (*VAA, error) {
	var seq [8]byte
	if _, err := rand.Read(seq[:]); err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	v := &VAA{
		Version:          SupportedVAAVersion,
		GuardianSetIndex: 0,
		Timestamp:        time.Unix(1, 0),
		Nonce:            1,
		Sequence:         binary.BigEndian.Uint64(seq[:]),
		ConsistencyLevel: 0,
		EmitterChain:     GovernanceChain,
		EmitterAddress:   GovernanceEmitter,
		Payload:          payload,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}
