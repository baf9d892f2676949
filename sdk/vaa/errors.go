package vaa

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableInput is returned when CLI input is neither hex nor base64 encoded VAA bytes.
	ErrUnparseableInput = errors.New("Couldn't parse VAA as hex or base64") //nolint:stylecheck // user-facing message

	// ErrInvalidSignature is returned when a signature cannot be used for public key recovery.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnreachable guards type switches over Payload. Hitting it means a variant was added without
	// updating every dispatch site.
	ErrUnreachable = errors.New("unreachable: unhandled payload variant")

	ErrNoGuardians  = errors.New("no addresses were provided")
	ErrNotSigned    = errors.New("VAA was not signed")
	ErrNoQuorum     = errors.New("VAA did not have a quorum")
	ErrBadSignature = errors.New("VAA had bad signatures")
)

// DecodeError reports which field of the wire format could not be read.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func unreachable(v any) error {
	return fmt.Errorf("%w: %T", ErrUnreachable, v)
}
