// Package address implements the ledger's opaque, fixed-width account
// identifiers.
//
// An Address is tagged at compile time with the kind of thing it refers to
// (an asset, an account, or a contract); the tag costs nothing at runtime —
// it only exists as the type parameter K and disappears once the value is
// lowered into bytes. Holder, in holder.go, is the runtime-tagged union
// that Address deliberately avoids being.
package address

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

// Length is the number of identifying bytes in an Address, independent of
// kind.
const Length = 32

const checksumLength = 4

// Kind tags indicate which address kind a Kind marker type stands for.
// Only AAsset, AAccount and AContract are ever embedded in a text form;
// Holder keeps its own runtime discriminator, HolderKind.
type Kind int

const (
	KindAsset Kind = iota + 1
	KindAccount
	KindContract
)

func (k Kind) String() string {
	switch k {
	case KindAsset:
		return "asset"
	case KindAccount:
		return "account"
	case KindContract:
		return "contract"
	default:
		return "unknown"
	}
}

// AAsset, AAccount and AContract are the phantom type parameters Address is
// generic over. They carry no fields and are never instantiated; only
// their Kind() method is ever called, and only on the zero value.
type AAsset struct{}
type AAccount struct{}
type AContract struct{}

// marker is implemented by AAsset, AAccount and AContract so Address[K] can
// recover its own kind without runtime state.
type marker interface {
	Kind() Kind
}

func (AAsset) Kind() Kind    { return KindAsset }
func (AAccount) Kind() Kind  { return KindAccount }
func (AContract) Kind() Kind { return KindContract }

// Address is an opaque fixed-width identifier refined by its referent kind
// K. Two addresses of different kinds with identical bytes are distinct
// values at compile time, even though their wire encoding (Bytes) is
// identical — the distinction is erased exactly at the Holder boundary,
// per design.
type Address[K marker] struct {
	bytes [Length]byte
}

// FromBytes validates and wraps a raw identifier. The only format
// requirement is length; content is opaque to this package.
func FromBytes[K marker](raw []byte) (Address[K], error) {
	var a Address[K]
	if len(raw) != Length {
		return a, fmt.Errorf("address: invalid length %d, want %d", len(raw), Length)
	}
	copy(a.bytes[:], raw)
	return a, nil
}

// Derive content-addresses an identifier of kind K from arbitrary bytes
// (e.g. an asset's issuer and name, or a public key), the same way
// transactionrecord.NewAssetIdentifier derives an asset id from a
// fingerprint: by hashing. The kind is hashed in ahead of the seed, so one
// seed derives different bytes for different kinds.
func Derive[K marker](seed []byte) Address[K] {
	var zero K
	digest := sha3.Sum256(append([]byte{byte(zero.Kind())}, seed...))
	var a Address[K]
	copy(a.bytes[:], digest[:Length])
	return a
}

// Bytes returns the raw identifying bytes, with the kind tag erased — this
// is the representation the binary codec and the KV store key on.
func (a Address[K]) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, a.bytes[:])
	return b
}

// Equal reports whether two addresses of the same kind carry identical
// bytes.
func (a Address[K]) Equal(other Address[K]) bool {
	return bytes.Equal(a.bytes[:], other.bytes[:])
}

// Compare orders two addresses of the same kind lexicographically by byte
// content; used to keep holdings maps in deterministic iteration order.
func (a Address[K]) Compare(other Address[K]) int {
	return bytes.Compare(a.bytes[:], other.bytes[:])
}

func (a Address[K]) kind() Kind {
	var zero K
	return zero.Kind()
}

// String renders the base58 text form: kind byte || 32 address bytes || 4
// byte sha3-256 checksum, base58 encoded, for all three kinds.
func (a Address[K]) String() string {
	return encodeText(a.kind(), a.bytes[:])
}

// GoString supports %#v the way transactionrecord.AssetIdentifier does.
func (a Address[K]) GoString() string {
	return fmt.Sprintf("<%s:%s>", a.kind(), hex.EncodeToString(a.bytes[:]))
}

// MarshalText implements encoding.TextMarshaler. Unlike Holder, Address
// retains its kind tag across the JSON boundary — only Holder is lossy
// (§4.6).
func (a Address[K]) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, rejecting text whose
// encoded kind does not match K.
func (a *Address[K]) UnmarshalText(text []byte) error {
	var zero K
	kind, raw, err := decodeText(string(text))
	if err != nil {
		return err
	}
	if kind != zero.Kind() {
		return fmt.Errorf("address: text encodes kind %s, want %s", kind, zero.Kind())
	}
	copy(a.bytes[:], raw)
	return nil
}

func encodeText(kind Kind, raw []byte) string {
	buffer := make([]byte, 0, 1+Length+checksumLength)
	buffer = append(buffer, byte(kind))
	buffer = append(buffer, raw...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

func decodeText(text string) (Kind, []byte, error) {
	decoded, err := base58.Decode(text)
	if err != nil {
		return 0, nil, fmt.Errorf("address: %w", err)
	}
	if len(decoded) != 1+Length+checksumLength {
		return 0, nil, fmt.Errorf("address: invalid encoded length %d", len(decoded))
	}
	body := decoded[:len(decoded)-checksumLength]
	checksum := decoded[len(decoded)-checksumLength:]
	expected := sha3.Sum256(body)
	if !bytes.Equal(expected[:checksumLength], checksum) {
		return 0, nil, fmt.Errorf("address: checksum mismatch")
	}
	return Kind(body[0]), body[1:], nil
}
