package vaa

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type signatureJSON struct {
	GuardianSetIndex uint8  `json:"guardianSetIndex"`
	Signature        string `json:"signature"`
}

type vaaJSON struct {
	Version          uint8           `json:"version"`
	GuardianSetIndex uint32          `json:"guardianSetIndex"`
	Signatures       []signatureJSON `json:"signatures"`
	Timestamp        int64           `json:"timestamp"`
	Nonce            uint32          `json:"nonce"`
	EmitterChain     ChainID         `json:"emitterChain"`
	EmitterAddress   Address         `json:"emitterAddress"`
	Sequence         string          `json:"sequence"`
	ConsistencyLevel uint8           `json:"consistencyLevel"`
	Payload          json.RawMessage `json:"payload"`
	Digest           string          `json:"digest"`
}

// MarshalJSON renders the VAA together with its digest. The sequence is a decimal string so that values above 2^53
// survive JSON consumers that parse numbers as doubles.
func (v VAA) MarshalJSON() ([]byte, error) {
	digest, err := v.HexDigest()
	if err != nil {
		return nil, err
	}

	var payload json.RawMessage = []byte("null")
	if v.Payload != nil {
		if payload, err = MarshalPayloadJSON(v.Payload); err != nil {
			return nil, err
		}
	}

	sigs := make([]signatureJSON, len(v.Signatures))
	for i, s := range v.Signatures {
		sigs[i] = signatureJSON{GuardianSetIndex: s.Index, Signature: s.Signature.String()}
	}

	return json.Marshal(vaaJSON{
		Version:          v.Version,
		GuardianSetIndex: v.GuardianSetIndex,
		Signatures:       sigs,
		Timestamp:        v.Timestamp.Unix(),
		Nonce:            v.Nonce,
		EmitterChain:     v.EmitterChain,
		EmitterAddress:   v.EmitterAddress,
		Sequence:         strconv.FormatUint(v.Sequence, 10),
		ConsistencyLevel: v.ConsistencyLevel,
		Payload:          payload,
		Digest:           digest,
	})
}

// MarshalPayloadJSON renders a payload as an object whose leading "module" and "type" keys identify the variant.
func MarshalPayloadJSON(p Payload) ([]byte, error) {
	view, err := payloadView(p)
	if err != nil {
		return nil, err
	}
	fields, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if m := p.Module(); m != "" {
		fmt.Fprintf(&buf, `"module":%q,`, string(m))
	}
	fmt.Fprintf(&buf, `"type":%q`, p.Type())
	if inner := fields[1 : len(fields)-1]; len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func payloadView(p Payload) (any, error) {
	switch p := p.(type) {
	case ContractUpgrade:
		return struct {
			Chain   ChainID `json:"chain"`
			Address Address `json:"address"`
		}{p.Chain, p.Address}, nil
	case GuardianSetUpgrade:
		return struct {
			Chain                ChainID  `json:"chain"`
			NewGuardianSetIndex  uint32   `json:"newGuardianSetIndex"`
			NewGuardianSetLength int      `json:"newGuardianSetLength"`
			NewGuardianSet       []string `json:"newGuardianSet"`
		}{p.Chain, p.NewGuardianSetIndex, len(p.NewGuardianSet), guardianHex(p.NewGuardianSet)}, nil
	case SetMessageFee:
		return struct {
			Chain ChainID `json:"chain"`
			Fee   string  `json:"fee"`
		}{p.Chain, decimal(p.Fee)}, nil
	case TransferFees:
		return struct {
			Chain     ChainID `json:"chain"`
			Amount    string  `json:"amount"`
			Recipient Address `json:"recipient"`
		}{p.Chain, decimal(p.Amount), p.Recipient}, nil
	case RecoverChainId:
		return struct {
			EvmChainId string  `json:"evmChainId"`
			NewChainId ChainID `json:"newChainId"`
		}{decimal(p.EvmChainId), p.NewChainId}, nil
	case RegisterChain:
		return struct {
			Chain          ChainID `json:"chain"`
			EmitterChain   ChainID `json:"emitterChain"`
			EmitterAddress Address `json:"emitterAddress"`
		}{p.Chain, p.EmitterChain, p.EmitterAddress}, nil
	case SetDefaultDeliveryProvider:
		return struct {
			Chain                ChainID `json:"chain"`
			RelayProviderAddress Address `json:"relayProviderAddress"`
		}{p.Chain, p.RelayProviderAddress}, nil
	case TokenBridgeTransfer:
		return struct {
			Amount       string  `json:"amount"`
			TokenAddress Address `json:"tokenAddress"`
			TokenChain   ChainID `json:"tokenChain"`
			ToAddress    Address `json:"toAddress"`
			Chain        ChainID `json:"chain"`
			Fee          string  `json:"fee"`
		}{decimal(p.Amount), p.TokenAddress, p.TokenChain, p.ToAddress, p.Chain, decimal(p.Fee)}, nil
	case TokenBridgeAttestMeta:
		return struct {
			TokenAddress Address `json:"tokenAddress"`
			TokenChain   ChainID `json:"tokenChain"`
			Decimals     uint8   `json:"decimals"`
			Symbol       string  `json:"symbol"`
			Name         string  `json:"name"`
		}{p.TokenAddress, p.TokenChain, p.Decimals, p.SymbolString(), p.NameString()}, nil
	case TokenBridgeTransferWithPayload:
		return struct {
			Amount       string  `json:"amount"`
			TokenAddress Address `json:"tokenAddress"`
			TokenChain   ChainID `json:"tokenChain"`
			ToAddress    Address `json:"toAddress"`
			Chain        ChainID `json:"chain"`
			FromAddress  Address `json:"fromAddress"`
			Payload      string  `json:"payload"`
		}{decimal(p.Amount), p.TokenAddress, p.TokenChain, p.ToAddress, p.Chain, p.FromAddress, "0x" + hex.EncodeToString(p.Payload)}, nil
	case NFTBridgeTransfer:
		return struct {
			TokenAddress Address `json:"tokenAddress"`
			TokenChain   ChainID `json:"tokenChain"`
			Symbol       string  `json:"tokenSymbol"`
			Name         string  `json:"tokenName"`
			TokenID      string  `json:"tokenId"`
			URI          string  `json:"tokenURI"`
			ToAddress    Address `json:"toAddress"`
			Chain        ChainID `json:"chain"`
		}{p.TokenAddress, p.TokenChain, p.SymbolString(), p.NameString(), decimal(p.TokenID), p.URI, p.ToAddress, p.Chain}, nil
	case Other:
		return struct {
			Hex   string `json:"hex"`
			ASCII string `json:"ascii"`
		}{hex.EncodeToString(p.Payload), printable(p.Payload)}, nil
	default:
		return nil, unreachable(p)
	}
}

func guardianHex(addrs []ethcommon.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = hex.EncodeToString(a.Bytes())
	}
	return out
}

func decimal(v *uint256.Int) string {
	if v == nil {
		return ""
	}
	return v.ToBig().String()
}

// printable keeps the printable ASCII of b, plus newlines and tabs.
func printable(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if (c >= 0x20 && c < 0x7f) || c == '\n' || c == '\t' {
			out = append(out, c)
		}
	}
	return string(out)
}
