package vaa

import (
	"bytes"
	"fmt"
)

type payloadDecoder func(bz []byte) (Payload, error)

// payloadDecoders are tried in order; the first one that consumes the whole payload wins.
var payloadDecoders = []payloadDecoder{
	decodeGuardianSetUpgrade,
	decodeContractUpgrade(ModuleCore),
	decodeContractUpgrade(ModuleTokenBridge),
	decodeContractUpgrade(ModuleNFTBridge),
	decodeContractUpgrade(ModuleWormholeRelayer),
	decodeRegisterChain(ModuleTokenBridge),
	decodeRegisterChain(ModuleNFTBridge),
	decodeRegisterChain(ModuleWormholeRelayer),
	decodeRecoverChainId(ModuleCore),
	decodeRecoverChainId(ModuleTokenBridge),
	decodeRecoverChainId(ModuleNFTBridge),
	decodeSetMessageFee,
	decodeTransferFees,
	decodeSetDefaultDeliveryProvider,
	decodeTokenBridgeAttestMeta,
	decodeTokenBridgeTransfer,
	decodeTokenBridgeTransferWithPayload,
	decodeNFTBridgeTransfer,
}

// DecodePayload recognizes the governance and bridge payload layouts. It never fails: bytes that match no layout
// come back as Other so that newer payload kinds still round trip.
func DecodePayload(bz []byte) Payload {
	for _, decode := range payloadDecoders {
		if p, err := decode(bz); err == nil {
			return p
		}
	}
	return Other{Payload: bytes.Clone(bz)}
}

// governanceBody returns what follows the module tag and action byte, or an error if bz does not start with them.
func governanceBody(bz []byte, module Module, action GovernanceAction) ([]byte, error) {
	tag, err := module.tag()
	if err != nil {
		return nil, err
	}
	if len(bz) < len(tag)+1 {
		return nil, fmt.Errorf("payload too short for a governance message: %d bytes", len(bz))
	}
	if !bytes.Equal(bz[:len(tag)], tag[:]) {
		return nil, fmt.Errorf("payload is not addressed to module %s", module)
	}
	if got := GovernanceAction(bz[len(tag)]); got != action {
		return nil, fmt.Errorf("unexpected %s action %d, want %d", module, got, action)
	}
	return bz[len(tag)+1:], nil
}

// typedBody returns what follows the leading type byte of a bridge application payload.
func typedBody(bz []byte, payloadType uint8) ([]byte, error) {
	if len(bz) == 0 || bz[0] != payloadType {
		return nil, fmt.Errorf("payload is not of type %d", payloadType)
	}
	return bz[1:], nil
}

func decodeGuardianSetUpgrade(bz []byte) (Payload, error) {
	body, err := governanceBody(bz, ModuleCore, ActionGuardianSetUpdate)
	if err != nil {
		return nil, err
	}
	var p GuardianSetUpgrade
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeContractUpgrade(module Module) payloadDecoder {
	return func(bz []byte) (Payload, error) {
		action, err := contractUpgradeAction(module)
		if err != nil {
			return nil, err
		}
		body, err := governanceBody(bz, module, action)
		if err != nil {
			return nil, err
		}
		p := ContractUpgrade{Owner: module}
		if err := p.Deserialize(body); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func decodeRegisterChain(module Module) payloadDecoder {
	return func(bz []byte) (Payload, error) {
		action, err := registerChainAction(module)
		if err != nil {
			return nil, err
		}
		body, err := governanceBody(bz, module, action)
		if err != nil {
			return nil, err
		}
		p := RegisterChain{Owner: module}
		if err := p.Deserialize(body); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func decodeRecoverChainId(module Module) payloadDecoder {
	return func(bz []byte) (Payload, error) {
		action, err := recoverChainIdAction(module)
		if err != nil {
			return nil, err
		}
		body, err := governanceBody(bz, module, action)
		if err != nil {
			return nil, err
		}
		p := RecoverChainId{Owner: module}
		if err := p.Deserialize(body); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func decodeSetMessageFee(bz []byte) (Payload, error) {
	body, err := governanceBody(bz, ModuleCore, ActionCoreSetMessageFee)
	if err != nil {
		return nil, err
	}
	var p SetMessageFee
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeTransferFees(bz []byte) (Payload, error) {
	body, err := governanceBody(bz, ModuleCore, ActionCoreTransferFees)
	if err != nil {
		return nil, err
	}
	var p TransferFees
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeSetDefaultDeliveryProvider(bz []byte) (Payload, error) {
	body, err := governanceBody(bz, ModuleWormholeRelayer, ActionSetDefaultDeliveryProvider)
	if err != nil {
		return nil, err
	}
	var p SetDefaultDeliveryProvider
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeTokenBridgeAttestMeta(bz []byte) (Payload, error) {
	body, err := typedBody(bz, PayloadTypeAttestMeta)
	if err != nil {
		return nil, err
	}
	var p TokenBridgeAttestMeta
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeTokenBridgeTransfer(bz []byte) (Payload, error) {
	body, err := typedBody(bz, PayloadTypeTransfer)
	if err != nil {
		return nil, err
	}
	var p TokenBridgeTransfer
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeTokenBridgeTransferWithPayload(bz []byte) (Payload, error) {
	body, err := typedBody(bz, PayloadTypeTransferWithPayload)
	if err != nil {
		return nil, err
	}
	var p TokenBridgeTransferWithPayload
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeNFTBridgeTransfer(bz []byte) (Payload, error) {
	body, err := typedBody(bz, PayloadTypeTransfer)
	if err != nil {
		return nil, err
	}
	var p NFTBridgeTransfer
	if err := p.Deserialize(body); err != nil {
		return nil, err
	}
	return p, nil
}
