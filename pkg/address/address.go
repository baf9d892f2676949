// Package address converts chain native addresses into the 32 byte Wormhole address format.
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"golang.org/x/crypto/sha3"
)

var (
	ErrChainUnset   = errors.New("chain unset")
	ErrNotSupported = errors.New("not supported yet")
)

// Parse decodes s in the native address format of chain and left-pads it to 32 bytes.
func Parse(chain vaa.ChainID, s string) (vaa.Address, error) {
	a, err := parse(chain, s)
	if err != nil {
		return vaa.Address{}, fmt.Errorf("invalid %s address %q: %w", chain, s, err)
	}
	return a, nil
}

func parse(chain vaa.ChainID, s string) (vaa.Address, error) {
	switch chain.Platform() {
	case vaa.PlatformUnset:
		return vaa.Address{}, ErrChainUnset
	case vaa.PlatformEVM, vaa.PlatformAlgorand, vaa.PlatformNear, vaa.PlatformSui:
		return fromHex(s)
	case vaa.PlatformSolana:
		b, err := base58.Decode(s)
		if err != nil {
			return vaa.Address{}, err
		}
		return vaa.BytesToAddress(b)
	case vaa.PlatformCosmWasm:
		return fromBech32(s)
	case vaa.PlatformAptos:
		if isHex(s) {
			return fromHex(s)
		}
		// Aptos type addresses are the hash of the fully qualified type name.
		return vaa.Address(sha3.Sum256([]byte(s))), nil
	case vaa.PlatformBtc:
		return vaa.Address{}, fmt.Errorf("%s is %w", chain, ErrNotSupported)
	default:
		return vaa.Address{}, fmt.Errorf("unknown platform %s", chain.Platform())
	}
}

// ParseCode is Parse for contract code references. CosmWasm chains refer to code by a decimal code id, which is encoded
// as a big-endian integer.
func ParseCode(chain vaa.ChainID, s string) (vaa.Address, error) {
	if chain.Platform() != vaa.PlatformCosmWasm {
		return Parse(chain, s)
	}
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		return vaa.Address{}, fmt.Errorf("invalid %s code id %q", chain, s)
	}
	if id.BitLen() > 256 {
		return vaa.Address{}, fmt.Errorf("%s code id %q does not fit in 32 bytes", chain, s)
	}
	var a vaa.Address
	id.FillBytes(a[:])
	return a, nil
}

// Emitter returns the address that messages published by contract carry as their emitter. For most platforms this is
// the contract address itself, the exceptions derive it from the contract.
func Emitter(chain vaa.ChainID, contract string) (vaa.Address, error) {
	a, err := emitter(chain, contract)
	if err != nil {
		return vaa.Address{}, fmt.Errorf("failed to derive %s emitter for %q: %w", chain, contract, err)
	}
	return a, nil
}

func emitter(chain vaa.ChainID, contract string) (vaa.Address, error) {
	switch chain.Platform() {
	case vaa.PlatformUnset:
		return vaa.Address{}, ErrChainUnset
	case vaa.PlatformEVM, vaa.PlatformSui:
		return fromHex(contract)
	case vaa.PlatformSolana:
		program, err := solana.PublicKeyFromBase58(contract)
		if err != nil {
			return vaa.Address{}, err
		}
		pda, _, err := solana.FindProgramAddress([][]byte{[]byte("emitter")}, program)
		if err != nil {
			return vaa.Address{}, err
		}
		return vaa.Address(pda), nil
	case vaa.PlatformCosmWasm:
		return fromBech32(contract)
	case vaa.PlatformAlgorand:
		appID, err := strconv.ParseUint(contract, 10, 64)
		if err != nil {
			return vaa.Address{}, fmt.Errorf("application id: %w", err)
		}
		return vaa.Address(crypto.GetApplicationAddress(appID)), nil
	case vaa.PlatformNear:
		return vaa.Address(sha256.Sum256([]byte(contract))), nil
	case vaa.PlatformAptos:
		return parse(chain, contract)
	case vaa.PlatformBtc:
		return vaa.Address{}, fmt.Errorf("%s is %w", chain, ErrNotSupported)
	default:
		return vaa.Address{}, fmt.Errorf("unknown platform %s", chain.Platform())
	}
}

func isHex(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// fromHex accepts odd-length hex, which the left padding makes unambiguous.
func fromHex(s string) (vaa.Address, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return vaa.Address{}, errors.New("empty address")
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return vaa.Address{}, err
	}
	return vaa.BytesToAddress(b)
}

func fromBech32(s string) (vaa.Address, error) {
	_, data, err := bech32.Decode(s)
	if err != nil {
		return vaa.Address{}, err
	}
	b, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return vaa.Address{}, err
	}
	return vaa.BytesToAddress(b)
}
