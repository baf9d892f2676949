package vaa

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Module identifies the contract a governance payload is addressed to. On the wire it is the ASCII name left padded
// with zeroes to 32 bytes.
type Module string

const (
	ModuleCore            Module = "Core"
	ModuleTokenBridge     Module = "TokenBridge"
	ModuleNFTBridge       Module = "NFTBridge"
	ModuleWormholeRelayer Module = "WormholeRelayer"
)

func (m Module) tag() ([32]byte, error) {
	var tag [32]byte
	buf, err := LeftPadBytes(string(m), 32)
	if err != nil {
		return tag, fmt.Errorf("failed to left pad module: %w", err)
	}
	copy(tag[:], buf.Bytes())
	return tag, nil
}

type GovernanceAction uint8

const (
	// Wormhole core governance actions
	// See e.g. GovernanceStructs.sol for semantic meaning of these
	ActionContractUpgrade    GovernanceAction = 1
	ActionGuardianSetUpdate  GovernanceAction = 2
	ActionCoreSetMessageFee  GovernanceAction = 3
	ActionCoreTransferFees   GovernanceAction = 4
	ActionCoreRecoverChainId GovernanceAction = 5

	// Token bridge, NFT bridge and relayer governance actions
	ActionRegisterChain              GovernanceAction = 1
	ActionUpgradeBridge              GovernanceAction = 2
	ActionBridgeRecoverChainId       GovernanceAction = 3
	ActionSetDefaultDeliveryProvider GovernanceAction = 3
)

// Token and NFT bridge application payloads carry no module, only a leading type byte.
const (
	PayloadTypeTransfer            uint8 = 1
	PayloadTypeAttestMeta          uint8 = 2
	PayloadTypeTransferWithPayload uint8 = 3
)

// Payload is the body of a VAA. The variants are ContractUpgrade, GuardianSetUpgrade, SetMessageFee, TransferFees,
// RecoverChainId, RegisterChain, SetDefaultDeliveryProvider, TokenBridgeTransfer, TokenBridgeAttestMeta,
// TokenBridgeTransferWithPayload, NFTBridgeTransfer and Other. The set is closed to this package.
type Payload interface {
	// Module is the contract the payload is addressed to. It is empty for Other.
	Module() Module
	// Type names the action or message kind, e.g. "GuardianSetUpgrade".
	Type() string
	// TargetChain is the chain the payload must be executed on, or ChainIDUnset if the payload does not say.
	TargetChain() ChainID
	Serialize() ([]byte, error)

	sealed()
}

type (
	// ContractUpgrade is a governance message to upgrade the implementation of a contract
	ContractUpgrade struct {
		Owner   Module
		Chain   ChainID
		Address Address
	}

	// GuardianSetUpgrade is a governance message to set a new guardian set
	GuardianSetUpgrade struct {
		Chain               ChainID
		NewGuardianSetIndex uint32
		NewGuardianSet      []ethcommon.Address
	}

	// SetMessageFee is a governance message to set the message fee for the core bridge.
	SetMessageFee struct {
		Chain ChainID
		Fee   *uint256.Int
	}

	// TransferFees is a governance message to pay out collected core bridge fees.
	TransferFees struct {
		Chain     ChainID
		Amount    *uint256.Int
		Recipient Address
	}

	// RecoverChainId is a governance message to recover a chain id after an EVM hard fork.
	RecoverChainId struct {
		Owner      Module
		EvmChainId *uint256.Int
		NewChainId ChainID
	}

	// RegisterChain is a governance message to register a bridge contract on another chain
	RegisterChain struct {
		Owner          Module
		Chain          ChainID
		EmitterChain   ChainID
		EmitterAddress Address
	}

	// SetDefaultDeliveryProvider is a governance message to set the default relay provider for the Wormhole Relayer.
	SetDefaultDeliveryProvider struct {
		Chain                ChainID
		RelayProviderAddress Address
	}

	// TokenBridgeTransfer moves fungible tokens to another chain.
	TokenBridgeTransfer struct {
		Amount       *uint256.Int
		TokenAddress Address
		TokenChain   ChainID
		ToAddress    Address
		Chain        ChainID
		Fee          *uint256.Int
	}

	// TokenBridgeAttestMeta publishes the metadata of a token so a wrapped asset can be created. Symbol and Name are
	// kept as the raw 32 bytes found on the wire.
	TokenBridgeAttestMeta struct {
		TokenAddress Address
		TokenChain   ChainID
		Decimals     uint8
		Symbol       [32]byte
		Name         [32]byte
	}

	// TokenBridgeTransferWithPayload moves fungible tokens and hands an arbitrary payload to the receiving contract.
	TokenBridgeTransferWithPayload struct {
		Amount       *uint256.Int
		TokenAddress Address
		TokenChain   ChainID
		ToAddress    Address
		Chain        ChainID
		FromAddress  Address
		Payload      []byte
	}

	// NFTBridgeTransfer moves a single non-fungible token to another chain.
	NFTBridgeTransfer struct {
		TokenAddress Address
		TokenChain   ChainID
		Symbol       [32]byte
		Name         [32]byte
		TokenID      *uint256.Int
		URI          string
		ToAddress    Address
		Chain        ChainID
	}

	// Other carries payload bytes that no known layout matched.
	Other struct {
		Payload []byte
	}
)

func (ContractUpgrade) sealed()                {}
func (GuardianSetUpgrade) sealed()             {}
func (SetMessageFee) sealed()                  {}
func (TransferFees) sealed()                   {}
func (RecoverChainId) sealed()                 {}
func (RegisterChain) sealed()                  {}
func (SetDefaultDeliveryProvider) sealed()     {}
func (TokenBridgeTransfer) sealed()            {}
func (TokenBridgeAttestMeta) sealed()          {}
func (TokenBridgeTransferWithPayload) sealed() {}
func (NFTBridgeTransfer) sealed()              {}
func (Other) sealed()                          {}

func (p ContractUpgrade) Module() Module              { return p.Owner }
func (GuardianSetUpgrade) Module() Module             { return ModuleCore }
func (SetMessageFee) Module() Module                  { return ModuleCore }
func (TransferFees) Module() Module                   { return ModuleCore }
func (p RecoverChainId) Module() Module               { return p.Owner }
func (p RegisterChain) Module() Module                { return p.Owner }
func (SetDefaultDeliveryProvider) Module() Module     { return ModuleWormholeRelayer }
func (TokenBridgeTransfer) Module() Module            { return ModuleTokenBridge }
func (TokenBridgeAttestMeta) Module() Module          { return ModuleTokenBridge }
func (TokenBridgeTransferWithPayload) Module() Module { return ModuleTokenBridge }
func (NFTBridgeTransfer) Module() Module              { return ModuleNFTBridge }
func (Other) Module() Module                          { return "" }

func (ContractUpgrade) Type() string                { return "ContractUpgrade" }
func (GuardianSetUpgrade) Type() string             { return "GuardianSetUpgrade" }
func (SetMessageFee) Type() string                  { return "SetMessageFee" }
func (TransferFees) Type() string                   { return "TransferFees" }
func (RecoverChainId) Type() string                 { return "RecoverChainId" }
func (RegisterChain) Type() string                  { return "RegisterChain" }
func (SetDefaultDeliveryProvider) Type() string     { return "SetDefaultDeliveryProvider" }
func (TokenBridgeTransfer) Type() string            { return "Transfer" }
func (TokenBridgeAttestMeta) Type() string          { return "AttestMeta" }
func (TokenBridgeTransferWithPayload) Type() string { return "TransferWithPayload" }
func (NFTBridgeTransfer) Type() string              { return "Transfer" }
func (Other) Type() string                          { return "Other" }

func (p ContractUpgrade) TargetChain() ChainID                { return p.Chain }
func (p GuardianSetUpgrade) TargetChain() ChainID             { return p.Chain }
func (p SetMessageFee) TargetChain() ChainID                  { return p.Chain }
func (p TransferFees) TargetChain() ChainID                   { return p.Chain }
func (RecoverChainId) TargetChain() ChainID                   { return ChainIDUnset }
func (p RegisterChain) TargetChain() ChainID                  { return p.Chain }
func (p SetDefaultDeliveryProvider) TargetChain() ChainID     { return p.Chain }
func (p TokenBridgeTransfer) TargetChain() ChainID            { return p.Chain }
func (TokenBridgeAttestMeta) TargetChain() ChainID            { return ChainIDUnset }
func (p TokenBridgeTransferWithPayload) TargetChain() ChainID { return p.Chain }
func (p NFTBridgeTransfer) TargetChain() ChainID              { return p.Chain }
func (Other) TargetChain() ChainID                            { return ChainIDUnset }

func contractUpgradeAction(m Module) (GovernanceAction, error) {
	switch m {
	case ModuleCore:
		return ActionContractUpgrade, nil
	case ModuleTokenBridge, ModuleNFTBridge, ModuleWormholeRelayer:
		return ActionUpgradeBridge, nil
	}
	return 0, fmt.Errorf("module %q has no contract upgrade action", m)
}

func recoverChainIdAction(m Module) (GovernanceAction, error) {
	switch m {
	case ModuleCore:
		return ActionCoreRecoverChainId, nil
	case ModuleTokenBridge, ModuleNFTBridge:
		return ActionBridgeRecoverChainId, nil
	}
	return 0, fmt.Errorf("module %q has no recover chain id action", m)
}

func registerChainAction(m Module) (GovernanceAction, error) {
	switch m {
	case ModuleTokenBridge, ModuleNFTBridge, ModuleWormholeRelayer:
		return ActionRegisterChain, nil
	}
	return 0, fmt.Errorf("module %q has no register chain action", m)
}

func (r ContractUpgrade) Serialize() ([]byte, error) {
	action, err := contractUpgradeAction(r.Owner)
	if err != nil {
		return nil, err
	}
	return serializeBridgeGovernanceVaa(r.Owner, action, r.Chain, r.Address[:])
}

func (r *ContractUpgrade) Deserialize(bz []byte) error {
	if len(bz) != 34 {
		return fmt.Errorf("incorrect payload length, should be 34, is %d", len(bz))
	}
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[0:2]))
	copy(r.Address[:], bz[2:34])
	return nil
}

func (r GuardianSetUpgrade) Serialize() ([]byte, error) {
	if len(r.NewGuardianSet) > math.MaxUint8 {
		return nil, fmt.Errorf("too many guardians: %d (max %d)", len(r.NewGuardianSet), math.MaxUint8)
	}
	payload := &bytes.Buffer{}
	MustWrite(payload, binary.BigEndian, r.NewGuardianSetIndex)
	MustWrite(payload, binary.BigEndian, uint8(len(r.NewGuardianSet))) // #nosec G115 -- checked above
	for _, k := range r.NewGuardianSet {
		payload.Write(k[:])
	}
	return serializeBridgeGovernanceVaa(ModuleCore, ActionGuardianSetUpdate, r.Chain, payload.Bytes())
}

func (r *GuardianSetUpgrade) Deserialize(bz []byte) error {
	if len(bz) < 7 {
		return fmt.Errorf("incorrect payload length, should be at least 7, is %d", len(bz))
	}
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[0:2]))
	r.NewGuardianSetIndex = binary.BigEndian.Uint32(bz[2:6])
	n := int(bz[6])
	if len(bz) != 7+n*ethcommon.AddressLength {
		return fmt.Errorf("incorrect payload length for %d guardians, should be %d, is %d", n, 7+n*ethcommon.AddressLength, len(bz))
	}
	r.NewGuardianSet = make([]ethcommon.Address, n)
	for i := range r.NewGuardianSet {
		off := 7 + i*ethcommon.AddressLength
		r.NewGuardianSet[i] = ethcommon.BytesToAddress(bz[off : off+ethcommon.AddressLength])
	}
	return nil
}

func (r SetMessageFee) Serialize() ([]byte, error) {
	payload := &bytes.Buffer{}
	if err := writeUint256(payload, "message fee", r.Fee); err != nil {
		return nil, err
	}
	return serializeBridgeGovernanceVaa(ModuleCore, ActionCoreSetMessageFee, r.Chain, payload.Bytes())
}

func (r *SetMessageFee) Deserialize(bz []byte) error {
	if len(bz) != 34 {
		return fmt.Errorf("incorrect payload length, should be 34, is %d", len(bz))
	}
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[0:2]))
	r.Fee = new(uint256.Int).SetBytes(bz[2:34])
	return nil
}

func (r TransferFees) Serialize() ([]byte, error) {
	payload := &bytes.Buffer{}
	if err := writeUint256(payload, "amount", r.Amount); err != nil {
		return nil, err
	}
	payload.Write(r.Recipient[:])
	return serializeBridgeGovernanceVaa(ModuleCore, ActionCoreTransferFees, r.Chain, payload.Bytes())
}

func (r *TransferFees) Deserialize(bz []byte) error {
	if len(bz) != 66 {
		return fmt.Errorf("incorrect payload length, should be 66, is %d", len(bz))
	}
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[0:2]))
	r.Amount = new(uint256.Int).SetBytes(bz[2:34])
	copy(r.Recipient[:], bz[34:66])
	return nil
}

// Serialize writes the module and action followed directly by the EVM chain id; there is no target chain field.
func (r RecoverChainId) Serialize() ([]byte, error) {
	action, err := recoverChainIdAction(r.Owner)
	if err != nil {
		return nil, err
	}
	buf, err := governanceHeader(r.Owner, action)
	if err != nil {
		return nil, err
	}
	if err := writeUint256(buf, "evm chain id", r.EvmChainId); err != nil {
		return nil, err
	}
	MustWrite(buf, binary.BigEndian, r.NewChainId)
	return buf.Bytes(), nil
}

func (r *RecoverChainId) Deserialize(bz []byte) error {
	if len(bz) != 34 {
		return fmt.Errorf("incorrect payload length, should be 34, is %d", len(bz))
	}
	r.EvmChainId = new(uint256.Int).SetBytes(bz[0:32])
	r.NewChainId = ChainID(binary.BigEndian.Uint16(bz[32:34]))
	return nil
}

func (r RegisterChain) Serialize() ([]byte, error) {
	action, err := registerChainAction(r.Owner)
	if err != nil {
		return nil, err
	}
	payload := &bytes.Buffer{}
	MustWrite(payload, binary.BigEndian, r.EmitterChain)
	payload.Write(r.EmitterAddress[:])
	return serializeBridgeGovernanceVaa(r.Owner, action, r.Chain, payload.Bytes())
}

func (r *RegisterChain) Deserialize(bz []byte) error {
	if len(bz) != 36 {
		return fmt.Errorf("incorrect payload length, should be 36, is %d", len(bz))
	}
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[0:2]))
	r.EmitterChain = ChainID(binary.BigEndian.Uint16(bz[2:4]))
	copy(r.EmitterAddress[:], bz[4:36])
	return nil
}

func (r SetDefaultDeliveryProvider) Serialize() ([]byte, error) {
	return serializeBridgeGovernanceVaa(ModuleWormholeRelayer, ActionSetDefaultDeliveryProvider, r.Chain, r.RelayProviderAddress[:])
}

func (r *SetDefaultDeliveryProvider) Deserialize(bz []byte) error {
	if len(bz) != 34 {
		return fmt.Errorf("incorrect payload length, should be 34, is %d", len(bz))
	}
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[0:2]))
	copy(r.RelayProviderAddress[:], bz[2:34])
	return nil
}

const (
	transferLength            = 32 + 32 + 2 + 32 + 2 + 32
	attestMetaLength          = 32 + 2 + 1 + 32 + 32
	transferWithPayloadLength = 32 + 32 + 2 + 32 + 2 + 32
	nftTransferFixedLength    = 32 + 2 + 32 + 32 + 32 + 1 + 32 + 2
)

func (r TokenBridgeTransfer) Serialize() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(PayloadTypeTransfer)
	if err := writeUint256(buf, "amount", r.Amount); err != nil {
		return nil, err
	}
	buf.Write(r.TokenAddress[:])
	MustWrite(buf, binary.BigEndian, r.TokenChain)
	buf.Write(r.ToAddress[:])
	MustWrite(buf, binary.BigEndian, r.Chain)
	if err := writeUint256(buf, "fee", r.Fee); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize reads the fields following the payload type byte.
func (r *TokenBridgeTransfer) Deserialize(bz []byte) error {
	if len(bz) != transferLength {
		return fmt.Errorf("incorrect payload length, should be %d, is %d", transferLength, len(bz))
	}
	r.Amount = new(uint256.Int).SetBytes(bz[0:32])
	copy(r.TokenAddress[:], bz[32:64])
	r.TokenChain = ChainID(binary.BigEndian.Uint16(bz[64:66]))
	copy(r.ToAddress[:], bz[66:98])
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[98:100]))
	r.Fee = new(uint256.Int).SetBytes(bz[100:132])
	return nil
}

func (r TokenBridgeAttestMeta) Serialize() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(PayloadTypeAttestMeta)
	buf.Write(r.TokenAddress[:])
	MustWrite(buf, binary.BigEndian, r.TokenChain)
	buf.WriteByte(r.Decimals)
	buf.Write(r.Symbol[:])
	buf.Write(r.Name[:])
	return buf.Bytes(), nil
}

// Deserialize reads the fields following the payload type byte.
func (r *TokenBridgeAttestMeta) Deserialize(bz []byte) error {
	if len(bz) != attestMetaLength {
		return fmt.Errorf("incorrect payload length, should be %d, is %d", attestMetaLength, len(bz))
	}
	copy(r.TokenAddress[:], bz[0:32])
	r.TokenChain = ChainID(binary.BigEndian.Uint16(bz[32:34]))
	r.Decimals = bz[34]
	copy(r.Symbol[:], bz[35:67])
	copy(r.Name[:], bz[67:99])
	return nil
}

// SymbolString returns the symbol without its NUL padding.
func (r TokenBridgeAttestMeta) SymbolString() string { return TrimPaddedString(r.Symbol) }

// NameString returns the name without its NUL padding.
func (r TokenBridgeAttestMeta) NameString() string { return TrimPaddedString(r.Name) }

func (r TokenBridgeTransferWithPayload) Serialize() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(PayloadTypeTransferWithPayload)
	if err := writeUint256(buf, "amount", r.Amount); err != nil {
		return nil, err
	}
	buf.Write(r.TokenAddress[:])
	MustWrite(buf, binary.BigEndian, r.TokenChain)
	buf.Write(r.ToAddress[:])
	MustWrite(buf, binary.BigEndian, r.Chain)
	buf.Write(r.FromAddress[:])
	buf.Write(r.Payload)
	return buf.Bytes(), nil
}

// Deserialize reads the fields following the payload type byte. Everything after the sender address is the payload.
func (r *TokenBridgeTransferWithPayload) Deserialize(bz []byte) error {
	if len(bz) < transferWithPayloadLength {
		return fmt.Errorf("incorrect payload length, should be at least %d, is %d", transferWithPayloadLength, len(bz))
	}
	r.Amount = new(uint256.Int).SetBytes(bz[0:32])
	copy(r.TokenAddress[:], bz[32:64])
	r.TokenChain = ChainID(binary.BigEndian.Uint16(bz[64:66]))
	copy(r.ToAddress[:], bz[66:98])
	r.Chain = ChainID(binary.BigEndian.Uint16(bz[98:100]))
	copy(r.FromAddress[:], bz[100:132])
	r.Payload = bytes.Clone(bz[132:])
	return nil
}

func (r NFTBridgeTransfer) Serialize() ([]byte, error) {
	if len(r.URI) > math.MaxUint8 {
		return nil, fmt.Errorf("uri too long: %d bytes (max %d)", len(r.URI), math.MaxUint8)
	}
	buf := &bytes.Buffer{}
	buf.WriteByte(PayloadTypeTransfer)
	buf.Write(r.TokenAddress[:])
	MustWrite(buf, binary.BigEndian, r.TokenChain)
	buf.Write(r.Symbol[:])
	buf.Write(r.Name[:])
	if err := writeUint256(buf, "token id", r.TokenID); err != nil {
		return nil, err
	}
	buf.WriteByte(uint8(len(r.URI))) // #nosec G115 -- checked above
	buf.WriteString(r.URI)
	buf.Write(r.ToAddress[:])
	MustWrite(buf, binary.BigEndian, r.Chain)
	return buf.Bytes(), nil
}

// Deserialize reads the fields following the payload type byte.
func (r *NFTBridgeTransfer) Deserialize(bz []byte) error {
	if len(bz) < nftTransferFixedLength {
		return fmt.Errorf("incorrect payload length, should be at least %d, is %d", nftTransferFixedLength, len(bz))
	}
	uriLen := int(bz[130])
	if len(bz) != nftTransferFixedLength+uriLen {
		return fmt.Errorf("incorrect payload length for a %d byte uri, should be %d, is %d", uriLen, nftTransferFixedLength+uriLen, len(bz))
	}
	copy(r.TokenAddress[:], bz[0:32])
	r.TokenChain = ChainID(binary.BigEndian.Uint16(bz[32:34]))
	copy(r.Symbol[:], bz[34:66])
	copy(r.Name[:], bz[66:98])
	r.TokenID = new(uint256.Int).SetBytes(bz[98:130])
	r.URI = string(bz[131 : 131+uriLen])
	rest := bz[131+uriLen:]
	copy(r.ToAddress[:], rest[0:32])
	r.Chain = ChainID(binary.BigEndian.Uint16(rest[32:34]))
	return nil
}

// SymbolString returns the symbol without its NUL padding.
func (r NFTBridgeTransfer) SymbolString() string { return TrimPaddedString(r.Symbol) }

// NameString returns the name without its NUL padding.
func (r NFTBridgeTransfer) NameString() string { return TrimPaddedString(r.Name) }

func (r Other) Serialize() ([]byte, error) {
	return bytes.Clone(r.Payload), nil
}

func governanceHeader(module Module, action GovernanceAction) (*bytes.Buffer, error) {
	buf, err := LeftPadBytes(string(module), 32)
	if err != nil {
		return nil, fmt.Errorf("failed to left pad module: %w", err)
	}
	MustWrite(buf, binary.BigEndian, action)
	return buf, nil
}

func serializeBridgeGovernanceVaa(module Module, actionId GovernanceAction, chainId ChainID, payload []byte) ([]byte, error) {
	buf, err := governanceHeader(module, actionId)
	if err != nil {
		return nil, err
	}
	MustWrite(buf, binary.BigEndian, chainId)
	buf.Write(payload)
	return buf.Bytes(), nil
}

func writeUint256(buf *bytes.Buffer, field string, v *uint256.Int) error {
	if v == nil {
		return fmt.Errorf("%s is not set", field)
	}
	b := v.Bytes32()
	buf.Write(b[:])
	return nil
}

// LeftPadBytes prepends zero bytes to payload until it is length bytes long.
func LeftPadBytes(payload string, length int) (*bytes.Buffer, error) {
	if length < 0 {
		return nil, errors.New("cannot prepend bytes to a negative length buffer")
	}

	if len(payload) > length {
		return nil, fmt.Errorf("payload longer than %d bytes", length)
	}

	buf := &bytes.Buffer{}
	buf.Write(make([]byte, length-len(payload)))
	buf.WriteString(payload)
	return buf, nil
}

// PadString right-pads s with NUL bytes to the fixed 32 byte string fields of bridge payloads.
func PadString(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) > len(out) {
		return out, fmt.Errorf("string %q longer than 32 bytes", s)
	}
	copy(out[:], s)
	return out, nil
}

// TrimPaddedString strips NUL padding from either end of a fixed 32 byte string field. Both left and right padded
// forms appear on chain.
func TrimPaddedString(b [32]byte) string {
	return strings.Trim(string(b[:]), "\x00")
}
