package vaa

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// GuardianKey pairs a guardian private key with the guardian's position in the guardian set it signs for.
type GuardianKey struct {
	Index uint8
	Key   *ecdsa.PrivateKey
}

// Sign signs the digest of v with every key and returns the signatures ordered by guardian index. The indices are
// taken from the keys as given; Sign does not check them against any on-chain guardian set.
func Sign(keys []GuardianKey, v *VAA) ([]*Signature, error) {
	digest, err := v.SigningDigest()
	if err != nil {
		return nil, err
	}

	seen := make(map[uint8]struct{}, len(keys))
	sigs := make([]*Signature, 0, len(keys))
	for _, k := range keys {
		if k.Key == nil {
			return nil, fmt.Errorf("no key for guardian %d", k.Index)
		}
		if _, dup := seen[k.Index]; dup {
			return nil, fmt.Errorf("duplicate guardian index %d", k.Index)
		}
		seen[k.Index] = struct{}{}

		sig, err := crypto.Sign(digest.Bytes(), k.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to sign with guardian %d: %w", k.Index, err)
		}
		s := &Signature{Index: k.Index}
		copy(s.Signature[:], sig)
		sigs = append(sigs, s)
	}

	sort.SliceStable(sigs, func(i, j int) bool { return sigs[i].Index < sigs[j].Index })
	return sigs, nil
}

// AddSignature signs v with key and appends the signature under the given guardian index.
func (v *VAA) AddSignature(key *ecdsa.PrivateKey, index uint8) error {
	digest, err := v.SigningDigest()
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return err
	}
	sigData := SignatureData{}
	copy(sigData[:], sig)

	v.Signatures = append(v.Signatures, &Signature{
		Index:     index,
		Signature: sigData,
	})
	return nil
}

// KeysFromSecrets parses hex-encoded guardian secrets. Each entry is either "index:secret" or a bare secret, in which
// case its position in the list is used as the index. The two forms cannot be mixed.
func KeysFromSecrets(secrets []string) ([]GuardianKey, error) {
	keys := make([]GuardianKey, 0, len(secrets))
	explicit := -1
	for pos, entry := range secrets {
		entry = strings.TrimSpace(entry)
		idxStr, secret, hasIndex := strings.Cut(entry, ":")
		if !hasIndex {
			secret = entry
		}
		if explicit == -1 {
			explicit = boolToInt(hasIndex)
		} else if explicit != boolToInt(hasIndex) {
			return nil, errors.New("guardian secrets must either all carry an index or none")
		}

		index := pos
		if hasIndex {
			n, err := strconv.ParseUint(idxStr, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid guardian index %q: %w", idxStr, err)
			}
			index = int(n)
		}
		if index > 255 {
			return nil, fmt.Errorf("guardian index %d out of range", index)
		}

		key, err := crypto.HexToECDSA(strings.TrimPrefix(secret, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid guardian secret at position %d: %w", pos, err)
		}
		keys = append(keys, GuardianKey{Index: uint8(index), Key: key}) // #nosec G115 -- checked above
	}
	return keys, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// RecoverAddress returns the address of the key that produced sig over digest. Signatures may use either 0/1 or
// 27/28 as recovery id. Malformed signatures return an error wrapping ErrInvalidSignature.
func RecoverAddress(digest []byte, sig []byte) (common.Address, error) {
	if len(digest) != common.HashLength {
		return common.Address{}, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidSignature, common.HashLength, len(digest))
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidSignature, crypto.SignatureLength, len(sig))
	}

	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if v := normalized[crypto.RecoveryIDOffset]; v == 27 || v == 28 {
		normalized[crypto.RecoveryIDOffset] = v - 27
	}
	if normalized[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, sig[crypto.RecoveryIDOffset])
	}

	pubKey, err := crypto.SigToPub(digest, normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
