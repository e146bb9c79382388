// Package account verifies ED25519-signed operations against a public key
// and bridges a verified key into the address types the ledger core
// operates on.
//
// Unlike the source this is adapted from, there is only one key algorithm
// here — the debug-only Nothing variant and the mnemonic phrase/seed
// derivation it supported have no role in a consensus-critical ledger
// core and are dropped (see DESIGN.md).
package account

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ed25519"

	"github.com/adjoint-io/uplink/address"
	"github.com/adjoint-io/uplink/fault"
)

// Signature is an ED25519 signature, printed and parsed as hex.
type Signature []byte

func (s Signature) String() string { return hex.EncodeToString(s) }
func (s Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(s) + ">"
}

func (s Signature) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(s)))
	hex.Encode(out, s)
	return out, nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	out := make([]byte, hex.DecodedLen(len(text)))
	n, err := hex.Decode(out, text)
	if err != nil {
		return err
	}
	*s = out[:n]
	return nil
}

// Key holds a verified ED25519 public key, the root of trust for both
// account and contract addresses.
type Key struct {
	publicKey ed25519.PublicKey
}

// NewKey wraps a raw ED25519 public key. It does not itself verify
// anything; CheckSignature is the verification boundary.
func NewKey(publicKey []byte) (Key, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return Key{}, fault.ErrKeyLength
	}
	return Key{publicKey: ed25519.PublicKey(publicKey)}, nil
}

// CheckSignature reports whether signature is a valid ED25519 signature
// of message under k.
func (k Key) CheckSignature(message []byte, signature Signature) error {
	if len(signature) != ed25519.SignatureSize {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(k.publicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes returns the raw public key.
func (k Key) Bytes() []byte {
	return k.publicKey
}

// AccountAddress derives the ledger account address that this key
// controls (§4.1). A key controls exactly one account address; deriving
// it is deterministic so every node computes the same one.
func (k Key) AccountAddress() address.Address[address.AAccount] {
	return address.Derive[address.AAccount](k.publicKey)
}

// ContractAddress derives the contract address this key would deploy to,
// for keys used as a contract's deployment authority rather than an
// account holder.
func (k Key) ContractAddress() address.Address[address.AContract] {
	return address.Derive[address.AContract](k.publicKey)
}

func (k Key) String() string {
	return fmt.Sprintf("account.Key(%x)", k.publicKey)
}
