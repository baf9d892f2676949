package sdk

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidNetwork = errors.New("invalid network")
var ErrNotFound = errors.New("not found")

// Network is the Wormhole deployment a command talks to.
type Network uint8

const (
	Mainnet Network = iota
	Testnet
	Devnet
)

// String returns the name accepted by NetworkFromString.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Devnet:
		return "devnet"
	default:
		return fmt.Sprintf("unknown network: %d", uint8(n))
	}
}

// NetworkFromString parses a network name. The guardian environment names ("prod", "test", "dev") are accepted as
// aliases.
func NetworkFromString(s string) (Network, error) {
	switch strings.ToLower(s) {
	case "mainnet", "prod":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	case "devnet", "dev":
		return Devnet, nil
	}
	return 0, fmt.Errorf("%w: %q (expected mainnet, testnet or devnet)", ErrInvalidNetwork, s)
}

// Set implements pflag.Value so a Network can be used directly as a flag.
func (n *Network) Set(s string) error {
	v, err := NetworkFromString(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n *Network) Type() string {
	return "network"
}
