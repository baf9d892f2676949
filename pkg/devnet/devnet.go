// Package devnet contains the well-known keys of the local deterministic devnet. None of them are secret.
package devnet

import (
	"crypto/ecdsa"
	mathrand "math/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// GanacheWormholeContractAddress is the core contract deployed by the devnet migrations.
	GanacheWormholeContractAddress = common.HexToAddress("0xC89Ce4735882C9F0f0FE26686c53074E09B0D550")
)

// Guardian keys of the devnet guardian set, in guardian index order.
var guardianSecrets = []string{
	"cfb12303a19cde580bb4dd771639b0d26bc68353645571a8cff516ab2ee113a0",
	"c3b2e45c422a1602333a64078aeb42637370b0f48fe385f9cfa6ad54a8e0c47e",
	"9f790d3f08bc4b5cd910d4278f3deb406e57bb5e924906ccd52052bb078ccd47",
	"b20cc49d6f2c82a5e6519015fc18aa3e562867f85f872c58f1277cfbd2a0c8e4",
}

// Account 0 of ganache's "myth like bonus scare ..." mnemonic, which deploys and owns the devnet contracts.
const ethereumSecret = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"

// GuardianSecret returns the hex-encoded key of devnet guardian i.
func GuardianSecret(i int) string {
	return common.Bytes2Hex(crypto.FromECDSA(GuardianKey(i)))
}

// GuardianKey returns the key of devnet guardian i. Guardians beyond the published set get keys derived from a reader
// seeded with their index.
func GuardianKey(i int) *ecdsa.PrivateKey {
	if i < 0 {
		panic("negative guardian index")
	}
	if i < len(guardianSecrets) {
		return mustKey(guardianSecrets[i])
	}

	r := mathrand.New(mathrand.NewSource(int64(555 + i))) //#nosec G404 devnet keys are public knowledge
	for {
		var seed [32]byte
		_, _ = r.Read(seed[:])
		if key, err := crypto.ToECDSA(seed[:]); err == nil {
			return key
		}
	}
}

// GuardianAddress returns the address of devnet guardian i.
func GuardianAddress(i int) common.Address {
	return crypto.PubkeyToAddress(GuardianKey(i).PublicKey)
}

// EthereumKey returns the devnet deployer key used to submit transactions to the local EVM chains.
func EthereumKey() *ecdsa.PrivateKey {
	return mustKey(ethereumSecret)
}

func mustKey(secret string) *ecdsa.PrivateKey {
	key, err := crypto.HexToECDSA(secret)
	if err != nil {
		panic(err)
	}
	return key
}
