// Package submit delivers signed VAAs to the chain they target.
package submit

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/wormhole-foundation/worm/pkg/devnet"
	"github.com/wormhole-foundation/worm/pkg/evm"
	"github.com/wormhole-foundation/worm/sdk"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
)

var (
	ErrNotSupported = errors.New("not supported yet")
	ErrNoTarget     = errors.New("This VAA does not specify the target chain, please provide it by hand using the '--chain' flag.") //nolint:stylecheck // user-facing message
	ErrNoKey        = errors.New("no private key configured")
)

// Request describes one submission. VAA is the parsed form of Raw. ContractAddress and RPC override the defaults of
// the network when set.
type Request struct {
	Network         sdk.Network
	Chain           vaa.ChainID
	VAA             *vaa.VAA
	Raw             []byte
	ContractAddress string
	RPC             string
}

type Result struct {
	Chain    vaa.ChainID
	Contract string
	Method   string
	TxHash   string
}

type Submitter interface {
	Submit(ctx context.Context, req Request) (Result, error)
}

// ResolveChain decides which chain a VAA is submitted to. A chain named by the payload wins, and flag must either be
// unset or agree with it.
func ResolveChain(payload vaa.Payload, flag vaa.ChainID) (vaa.ChainID, error) {
	target := payload.TargetChain()
	switch {
	case target != vaa.ChainIDUnset && flag != vaa.ChainIDUnset && target != flag:
		return vaa.ChainIDUnset, fmt.Errorf("Specified target chain (%s) does not match VAA target chain (%s)", flag, target) //nolint:stylecheck // user-facing message
	case target != vaa.ChainIDUnset:
		return target, nil
	case flag != vaa.ChainIDUnset:
		return flag, nil
	default:
		return vaa.ChainIDUnset, ErrNoTarget
	}
}

// ForChain returns the Submitter for the platform of chain.
func ForChain(chain vaa.ChainID, logger *zap.Logger) (Submitter, error) {
	switch p := chain.Platform(); p {
	case vaa.PlatformEVM:
		return NewEVM(WithLogger(logger)), nil
	case vaa.PlatformSolana, vaa.PlatformCosmWasm, vaa.PlatformAlgorand, vaa.PlatformNear,
		vaa.PlatformAptos, vaa.PlatformSui, vaa.PlatformBtc:
		return nil, fmt.Errorf("submitting to %s (%s) is %w", chain, p, ErrNotSupported)
	case vaa.PlatformUnset:
		return nil, fmt.Errorf("unknown chain %s", chain)
	default:
		return nil, fmt.Errorf("unknown platform %s", p)
	}
}

// sender is the part of evm.Client used for submissions.
type sender interface {
	Submit(ctx context.Context, key *ecdsa.PrivateKey, contract common.Address, method string, vaaBytes []byte) (common.Hash, error)
	Close()
}

type dialFunc func(ctx context.Context, rpcURL string, logger *zap.Logger) (sender, error)

func dialEVM(ctx context.Context, rpcURL string, logger *zap.Logger) (sender, error) {
	return evm.Dial(ctx, rpcURL, evm.WithLogger(logger))
}

// EVM submits VAAs to the Wormhole contracts on EVM chains.
type EVM struct {
	logger *zap.Logger
	getenv func(string) string
	dial   dialFunc
}

type Option func(*EVM)

func WithLogger(logger *zap.Logger) Option {
	return func(e *EVM) { e.logger = logger }
}

// WithGetenv replaces os.Getenv as the source of signing keys.
func WithGetenv(getenv func(string) string) Option {
	return func(e *EVM) { e.getenv = getenv }
}

func NewEVM(opts ...Option) *EVM {
	e := &EVM{
		logger: zap.NewNop(),
		getenv: os.Getenv,
		dial:   dialEVM,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *EVM) Submit(ctx context.Context, req Request) (Result, error) {
	payload := req.VAA.Payload
	module := payload.Module()
	if module == "" {
		return Result{}, fmt.Errorf("%s payloads do not name a contract to submit to", payload.Type())
	}

	method, err := evm.MethodFor(payload)
	if err != nil {
		return Result{}, err
	}

	contract := req.ContractAddress
	if contract == "" {
		if contract, err = sdk.ContractAddress(req.Network, req.Chain, module); err != nil {
			return Result{}, err
		}
	}
	if !common.IsHexAddress(contract) {
		return Result{}, fmt.Errorf("invalid %s contract address %q", req.Chain, contract)
	}

	rpc := req.RPC
	if rpc == "" {
		if rpc, err = sdk.DefaultRPC(req.Network, req.Chain); err != nil {
			return Result{}, err
		}
	}

	key, err := SigningKey(req.Network, e.getenv)
	if err != nil {
		return Result{}, err
	}

	logger := e.logger.With(zap.Stringer("chain", req.Chain), zap.String("module", string(module)))
	logger.Info("Submitting VAA", zap.String("method", method), zap.String("contract", contract), zap.String("rpc", rpc))

	client, err := e.dial(ctx, rpc, logger)
	if err != nil {
		return Result{}, err
	}
	defer client.Close()

	hash, err := client.Submit(ctx, key, common.HexToAddress(contract), method, req.Raw)
	if err != nil {
		return Result{}, err
	}
	return Result{Chain: req.Chain, Contract: contract, Method: method, TxHash: hash.Hex()}, nil
}

// SigningKey returns the EVM key for network. Mainnet reads ETH_KEY, testnet reads ETH_KEY_TESTNET and devnet uses the
// well-known devnet deployer key.
func SigningKey(network sdk.Network, getenv func(string) string) (*ecdsa.PrivateKey, error) {
	var name string
	switch network {
	case sdk.Mainnet:
		name = "ETH_KEY"
	case sdk.Testnet:
		name = "ETH_KEY_TESTNET"
	case sdk.Devnet:
		return devnet.EthereumKey(), nil
	default:
		return nil, fmt.Errorf("%w: %s", sdk.ErrInvalidNetwork, network)
	}

	secret := strings.TrimSpace(getenv(name))
	if secret == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrNoKey, name)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(secret, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key in %s: %w", name, err)
	}
	return key, nil
}
