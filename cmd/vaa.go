package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wormhole-foundation/worm/pkg/address"
	"github.com/wormhole-foundation/worm/pkg/wormscan"
	"github.com/wormhole-foundation/worm/sdk"
	"github.com/wormhole-foundation/worm/sdk/vaa"
	"go.uber.org/zap"
)

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [VAA]",
		Short: "Parse a VAA (can be in either hex or base64 format)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := vaa.ParseInput(args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render VAA: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func (c *cli) recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover [DIGEST] [SIGNATURE]",
		Short: "Recover an address from a signature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
			if err != nil {
				return fmt.Errorf("invalid digest: %w", err)
			}
			sig, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
			if err != nil {
				return fmt.Errorf("invalid signature: %w", err)
			}
			addr, err := vaa.RecoverAddress(digest, sig)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			return nil
		},
	}
}

// parseSignatures reads "index:signature" pairs. Bare signatures take their position in the list as index.
func parseSignatures(csv string) ([]*vaa.Signature, error) {
	var sigs []*vaa.Signature
	for pos, entry := range splitCSV(csv) {
		index := pos
		sigHex := entry
		if idx, s, ok := strings.Cut(entry, ":"); ok {
			n, err := strconv.ParseUint(idx, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid guardian index %q: %w", idx, err)
			}
			index, sigHex = int(n), s
		}

		bz, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid signature for guardian %d: %w", index, err)
		}
		if len(bz) != len(vaa.SignatureData{}) {
			return nil, fmt.Errorf("signature for guardian %d is %d bytes, expected %d", index, len(bz), len(vaa.SignatureData{}))
		}
		if index > 255 {
			return nil, fmt.Errorf("guardian index %d out of range", index)
		}

		sig := &vaa.Signature{Index: uint8(index)} // #nosec G115 -- checked above
		copy(sig.Signature[:], bz)
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func (c *cli) editVAACmd() *cobra.Command {
	var (
		input            string
		network          sdk.Network
		guardianSetIndex uint32
		signatures       string
		useWormscan      bool
		guardianSecret   string
		emitterChain     string
		emitterAddress   string
		nonce            uint32
		sequence         uint64
		consistencyLevel uint8
		timestamp        uint32
		payload          string
	)

	cmd := &cobra.Command{
		Use:   "edit-vaa",
		Short: "Edit the fields of a VAA and optionally re-sign it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := vaa.ParseInput(input)
			if err != nil {
				return err
			}
			flags := cmd.Flags()

			if flags.Changed("guardian-set-index") {
				v.GuardianSetIndex = guardianSetIndex
			}

			before, err := v.SigningDigest()
			if err != nil {
				return err
			}

			if flags.Changed("emitter-chain-id") {
				if v.EmitterChain, err = parseChain(emitterChain); err != nil {
					return err
				}
			}
			if flags.Changed("emitter-address") {
				if v.EmitterAddress, err = address.Parse(v.EmitterChain, emitterAddress); err != nil {
					return err
				}
			}
			if flags.Changed("nonce") {
				v.Nonce = nonce
			}
			if flags.Changed("sequence") {
				v.Sequence = sequence
			}
			if flags.Changed("consistency-level") {
				v.ConsistencyLevel = consistencyLevel
			}
			if flags.Changed("timestamp") {
				v.Timestamp = time.Unix(int64(timestamp), 0)
			}
			if flags.Changed("payload") {
				bz, err := hex.DecodeString(strings.TrimPrefix(payload, "0x"))
				if err != nil {
					return fmt.Errorf("invalid payload: %w", err)
				}
				v.Payload = vaa.DecodePayload(bz)
			}

			after, err := v.SigningDigest()
			if err != nil {
				return err
			}

			switch {
			case flags.Changed("signatures"):
				if v.Signatures, err = parseSignatures(signatures); err != nil {
					return err
				}
			case useWormscan:
				if err := c.wormscanSignatures(cmd, network, v, !flags.Changed("guardian-set-index")); err != nil {
					return err
				}
			case flags.Changed("guardian-secret"):
				keys, err := vaa.KeysFromSecrets(splitCSV(guardianSecret))
				if err != nil {
					return err
				}
				if v.Signatures, err = vaa.Sign(keys, v); err != nil {
					return err
				}
			case before != after && len(v.Signatures) > 0:
				c.logger.Warn("VAA body changed, dropping stale signatures", zap.Int("count", len(v.Signatures)))
				v.Signatures = nil
			}

			out, err := v.Serialize()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&input, "vaa", "", "VAA in hex or base64 format")
	networkFlag(f, &network)
	f.Uint32Var(&guardianSetIndex, "guardian-set-index", 0, "New guardian set index")
	f.StringVar(&signatures, "signatures", "", "Comma separated signatures, each optionally prefixed with 'index:'")
	f.BoolVar(&useWormscan, "wormscan", false, "Fetch the guardian signatures from Wormscan")
	f.StringVar(&guardianSecret, "guardian-secret", "", "Comma separated guardian secret keys to re-sign with")
	f.StringVar(&emitterChain, "emitter-chain-id", "", "New emitter chain (name or ID)")
	f.StringVar(&emitterAddress, "emitter-address", "", "New emitter address in the native format of the emitter chain")
	f.Uint32Var(&nonce, "nonce", 0, "New nonce")
	f.Uint64Var(&sequence, "sequence", 0, "New sequence number")
	f.Uint8Var(&consistencyLevel, "consistency-level", 0, "New consistency level")
	f.Uint32Var(&timestamp, "timestamp", 0, "New timestamp (unix seconds)")
	f.StringVar(&payload, "payload", "", "New payload in hex")

	markRequired(cmd, "vaa")
	cmd.MarkFlagsMutuallyExclusive("signatures", "wormscan", "guardian-secret")
	return cmd
}

// wormscanSignatures replaces the signatures of v with the observations Wormscan holds for its message. The guardian
// set index is taken from Wormscan when takeIndex is set.
func (c *cli) wormscanSignatures(cmd *cobra.Command, network sdk.Network, v *vaa.VAA, takeIndex bool) error {
	url, err := c.wormscanURL(network)
	if err != nil {
		return err
	}
	client := wormscan.NewClient(url, wormscan.WithLogger(c.logger))

	index, guardians, err := client.CurrentGuardianSet(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch guardian set: %w", err)
	}
	observations, err := client.Observations(cmd.Context(), v.EmitterChain, v.EmitterAddress, v.Sequence)
	if err != nil {
		return fmt.Errorf("failed to fetch observations: %w", err)
	}

	if takeIndex {
		v.GuardianSetIndex = index
	}
	v.Signatures = wormscan.SignaturesFor(observations, guardians, c.logger)

	if quorum := vaa.CalculateQuorum(len(guardians)); len(v.Signatures) < quorum {
		c.logger.Warn("Not enough signatures for quorum", zap.Int("signatures", len(v.Signatures)), zap.Int("quorum", quorum))
	}
	return nil
}

func (c *cli) verifyVAACmd() *cobra.Command {
	var (
		input  string
		target evmTarget
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "verify-vaa",
		Short: "Verify a VAA against the guardian set of the core contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := vaa.DecodeInput(input)
			if err != nil {
				return err
			}
			v, err := vaa.Unmarshal(raw)
			if err != nil {
				return err
			}

			chain, core, rpc, err := target.resolve(vaa.ModuleCore, c.rpcOverride)
			if err != nil {
				return err
			}
			logger := c.logger.With(zap.Stringer("chain", chain), zap.Stringer("core", core))

			client, err := c.dialEVM(cmd.Context(), rpc, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			if local {
				index, guardians, err := client.CurrentGuardianSet(cmd.Context(), core)
				if err != nil {
					return err
				}
				if v.GuardianSetIndex != index {
					return fmt.Errorf("VAA is signed by guardian set %d, but the current guardian set is %d", v.GuardianSetIndex, index)
				}
				if err := v.Verify(guardians); err != nil {
					return fmt.Errorf("Verification failed: %w", err) //nolint:stylecheck // user-facing message
				}
			} else {
				valid, reason, err := client.ParseAndVerifyVM(cmd.Context(), core, raw)
				if err != nil {
					return err
				}
				if !valid {
					return fmt.Errorf("Verification failed: %s", reason) //nolint:stylecheck // user-facing message
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Verification succeeded")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&input, "vaa", "", "VAA in hex or base64 format")
	target.addFlags(f, vaa.ChainIDEthereum.String())
	f.BoolVar(&local, "local", false, "Verify the signatures locally against the current guardian set")
	markRequired(cmd, "vaa", "network")
	return cmd
}
