package vaa

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// CalculateQuorum returns the minimum number of guardians that need to sign a VAA for a given guardian set.
//
// The canonical source is the calculation in the contracts (solana/bridge/src/processor.rs and
// ethereum/contracts/Wormhole.sol), and this needs to match the implementation in the contracts.
func CalculateQuorum(numGuardians int) int {
	if numGuardians < 0 {
		panic("Invalid numGuardians is less than zero")
	}
	return ((numGuardians * 2) / 3) + 1
}

// VerifySignatures checks every signature against the guardian at its index. Indices must be strictly increasing,
// which also rules out a guardian signing twice.
func (v *VAA) VerifySignatures(addresses []common.Address) error {
	digest, err := v.SigningDigest()
	if err != nil {
		return err
	}
	return verifySignatures(digest.Bytes(), v.Signatures, addresses)
}

func verifySignatures(digest []byte, signatures []*Signature, addresses []common.Address) error {
	if len(addresses) < len(signatures) {
		return fmt.Errorf("%w: %d signatures for %d guardians", ErrBadSignature, len(signatures), len(addresses))
	}

	lastIndex := -1
	signers := make(map[common.Address]struct{}, len(signatures))

	for _, sig := range signatures {
		if int(sig.Index) >= len(addresses) {
			return fmt.Errorf("%w: guardian index %d out of range", ErrBadSignature, sig.Index)
		}

		if int(sig.Index) <= lastIndex {
			return fmt.Errorf("%w: guardian index %d is not in increasing order", ErrBadSignature, sig.Index)
		}
		lastIndex = int(sig.Index)

		addr := addresses[sig.Index]
		recovered, err := RecoverAddress(digest, sig.Signature[:])
		if err != nil {
			return fmt.Errorf("%w: guardian %d: %v", ErrBadSignature, sig.Index, err)
		}
		if !bytes.Equal(recovered.Bytes(), addr.Bytes()) {
			return fmt.Errorf("%w: guardian %d signature recovers to %s, expected %s", ErrBadSignature, sig.Index, recovered.Hex(), addr.Hex())
		}

		if _, dup := signers[addr]; dup {
			return fmt.Errorf("%w: guardian %s signed twice", ErrBadSignature, addr.Hex())
		}
		signers[addr] = struct{}{}
	}

	return nil
}

// Verify takes the complete guardian set and checks that the VAA is signed by a quorum of it.
// NOTE:  Verify will not work correctly if a subset of the guardian set keys is passed in.
func (v *VAA) Verify(addresses []common.Address) error {
	if len(addresses) == 0 {
		return ErrNoGuardians
	}

	if len(v.Signatures) == 0 {
		return ErrNotSigned
	}

	quorum := CalculateQuorum(len(addresses))
	if len(v.Signatures) < quorum {
		return fmt.Errorf("%w: have %d signatures, need %d of %d guardians", ErrNoQuorum, len(v.Signatures), quorum, len(addresses))
	}

	return v.VerifySignatures(addresses)
}
