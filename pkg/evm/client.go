// Package evm talks to the Wormhole contracts on EVM chains.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

const (
	// RpcTimeout bounds a single contract call.
	RpcTimeout = 15 * time.Second

	defaultRetries = 3
)

// Backend is the subset of an ethclient.Client used by Client.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// Client wraps an EVM RPC connection.
type Client struct {
	backend Backend
	logger  *zap.Logger
	retries uint64
}

type Option func(*Client)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetries sets how often a failed read is retried. Reverts are never retried.
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

// NewClient uses backend for all calls.
func NewClient(backend Backend, opts ...Option) *Client {
	c := &Client{
		backend: backend,
		logger:  zap.NewNop(),
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to the JSON-RPC endpoint at rpcURL.
func Dial(ctx context.Context, rpcURL string, opts ...Option) (*Client, error) {
	timeout, cancel := context.WithTimeout(ctx, RpcTimeout)
	defer cancel()

	eth, err := ethclient.DialContext(timeout, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	return NewClient(eth, opts...), nil
}

// Close releases the underlying connection if the backend holds one.
func (c *Client) Close() {
	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
}

// call invokes a view method of contract and returns the unpacked outputs.
func (c *Client) call(ctx context.Context, contractABI abi.ABI, contract common.Address, method string, args ...interface{}) ([]interface{}, error) {
	bound := bind.NewBoundContract(contract, contractABI, c.backend, c.backend, c.backend)

	var out []interface{}
	op := func() error {
		timeout, cancel := context.WithTimeout(ctx, RpcTimeout)
		defer cancel()

		out = nil
		err := bound.Call(&bind.CallOpts{Context: timeout}, &out, method, args...)
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("contract call failed, retrying",
			zap.String("method", method),
			zap.Stringer("contract", contract),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return nil, fmt.Errorf("failed to call %s on %s: %w", method, contract.Hex(), err)
	}
	return out, nil
}

// isPermanent reports errors that a retry cannot fix.
func isPermanent(err error) bool {
	if errors.Is(err, bind.ErrNoCode) || errors.Is(err, context.Canceled) {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted") || strings.Contains(err.Error(), "abi:")
}

// CurrentGuardianSet returns the index and keys of the guardian set the core contract currently accepts.
func (c *Client) CurrentGuardianSet(ctx context.Context, core common.Address) (uint32, []common.Address, error) {
	out, err := c.call(ctx, coreContractABI, core, "getCurrentGuardianSetIndex")
	if err != nil {
		return 0, nil, fmt.Errorf("error requesting current guardian set index: %w", err)
	}
	index := *abi.ConvertType(out[0], new(uint32)).(*uint32)

	gs, err := c.guardianSet(ctx, core, index)
	if err != nil {
		return 0, nil, err
	}
	return index, gs.Keys, nil
}

type guardianSet struct {
	Keys           []common.Address
	ExpirationTime uint32
}

func (c *Client) guardianSet(ctx context.Context, core common.Address, index uint32) (guardianSet, error) {
	out, err := c.call(ctx, coreContractABI, core, "getGuardianSet", index)
	if err != nil {
		return guardianSet{}, fmt.Errorf("error requesting guardian set %d: %w", index, err)
	}
	return *abi.ConvertType(out[0], new(guardianSet)).(*guardianSet), nil
}

// ParseAndVerifyVM asks the core contract to verify vaaBytes. A VAA the contract rejects is not an error: valid is
// false and reason carries the contract's explanation.
func (c *Client) ParseAndVerifyVM(ctx context.Context, core common.Address, vaaBytes []byte) (valid bool, reason string, err error) {
	out, err := c.call(ctx, coreContractABI, core, "parseAndVerifyVM", vaaBytes)
	if err != nil {
		return false, "", err
	}
	if len(out) != 3 {
		return false, "", fmt.Errorf("parseAndVerifyVM returned %d values, expected 3", len(out))
	}
	valid = *abi.ConvertType(out[1], new(bool)).(*bool)
	reason = *abi.ConvertType(out[2], new(string)).(*string)
	return valid, reason, nil
}

// Submit sends vaaBytes to method of contract in a transaction signed by key and waits until it is mined. It fails if
// the transaction reverts.
func (c *Client) Submit(ctx context.Context, key *ecdsa.PrivateKey, contract common.Address, method string, vaaBytes []byte) (common.Hash, error) {
	if _, ok := submitContractABI.Methods[method]; !ok {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrNoMethod, method)
	}

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get chain ID: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	bound := bind.NewBoundContract(contract, submitContractABI, c.backend, c.backend, c.backend)
	tx, err := bound.Transact(opts, method, vaaBytes)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to send %s transaction: %w", method, err)
	}

	c.logger.Info("Submitted transaction",
		zap.String("method", method),
		zap.Stringer("contract", contract),
		zap.Stringer("from", opts.From),
		zap.Stringer("txHash", tx.Hash()))

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return tx.Hash(), fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash(), fmt.Errorf("transaction %s reverted in block %s", tx.Hash().Hex(), receipt.BlockNumber)
	}

	c.logger.Info("Transaction mined",
		zap.Stringer("txHash", tx.Hash()),
		zap.Stringer("block", receipt.BlockNumber),
		zap.Uint64("gasUsed", receipt.GasUsed))
	return tx.Hash(), nil
}
