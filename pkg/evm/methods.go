package evm

import (
	"errors"
	"fmt"

	"github.com/wormhole-foundation/worm/sdk/vaa"
)

// ErrNoMethod is returned for payloads that no contract entry point accepts.
var ErrNoMethod = errors.New("no contract method")

// MethodFor returns the contract entry point that executes payload. The contract is the one named by payload.Module().
func MethodFor(payload vaa.Payload) (string, error) {
	switch p := payload.(type) {
	case vaa.GuardianSetUpgrade:
		return MethodSubmitNewGuardianSet, nil
	case vaa.SetMessageFee:
		return MethodSubmitSetMessageFee, nil
	case vaa.TransferFees:
		return MethodSubmitTransferFees, nil
	case vaa.ContractUpgrade:
		switch p.Owner {
		case vaa.ModuleCore, vaa.ModuleWormholeRelayer:
			return MethodSubmitContractUpgrade, nil
		case vaa.ModuleTokenBridge, vaa.ModuleNFTBridge:
			return MethodUpgrade, nil
		}
	case vaa.RecoverChainId:
		switch p.Owner {
		case vaa.ModuleCore, vaa.ModuleTokenBridge, vaa.ModuleNFTBridge:
			return MethodSubmitRecoverChainId, nil
		}
	case vaa.RegisterChain:
		switch p.Owner {
		case vaa.ModuleTokenBridge, vaa.ModuleNFTBridge:
			return MethodRegisterChain, nil
		case vaa.ModuleWormholeRelayer:
			return MethodRegisterWormholeRelayerContract, nil
		}
	case vaa.SetDefaultDeliveryProvider:
		return MethodSetDefaultDeliveryProvider, nil
	case vaa.TokenBridgeTransfer, vaa.NFTBridgeTransfer:
		return MethodCompleteTransfer, nil
	case vaa.TokenBridgeAttestMeta:
		return MethodCreateWrapped, nil
	case vaa.TokenBridgeTransferWithPayload:
		return MethodCompleteTransferWithPayload, nil
	case vaa.Other:
		return "", fmt.Errorf("%w: payload is not a known message type", ErrNoMethod)
	default:
		return "", fmt.Errorf("%w: %T", vaa.ErrUnreachable, p)
	}
	return "", fmt.Errorf("%w: %s %s", ErrNoMethod, payload.Module(), payload.Type())
}
