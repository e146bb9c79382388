package address

import "bytes"

// HolderKind discriminates the two holder-capable address kinds at
// runtime. Unlike Address's phantom K, this tag is real data — Holder is
// the tagged sum the spec calls for, not a phantom refinement.
type HolderKind uint8

const (
	HolderAccount HolderKind = iota
	HolderContract
)

func (k HolderKind) String() string {
	if k == HolderContract {
		return "contract"
	}
	return "account"
}

// Holder is a tagged union over Address[AAccount] and Address[AContract].
// It is comparable (usable as a map key for Holdings) because both fields
// are plain value types. Two holders are equal iff both the tag and the
// address bytes match; HolderAccount and HolderContract with identical
// bytes are distinct holders even though their binary/JSON encodings are
// not (§4.1, §4.5, §4.6).
type Holder struct {
	kind HolderKind
	addr [Length]byte
}

// NewAccountHolder wraps an account address as a holder.
func NewAccountHolder(a Address[AAccount]) Holder {
	return Holder{kind: HolderAccount, addr: a.bytes}
}

// NewContractHolder wraps a contract address as a holder.
func NewContractHolder(a Address[AContract]) Holder {
	return Holder{kind: HolderContract, addr: a.bytes}
}

// HolderFromBytes reconstructs a holder from raw address bytes and an
// explicit kind — used by the binary/JSON decoders, which must supply the
// kind out of band (the wire form itself does not carry it).
func HolderFromBytes(kind HolderKind, raw []byte) (Holder, error) {
	if len(raw) != Length {
		return Holder{}, errInvalidHolderLength(len(raw))
	}
	h := Holder{kind: kind}
	copy(h.addr[:], raw)
	return h, nil
}

// Kind reports whether this holder is an account or a contract.
func (h Holder) Kind() HolderKind { return h.kind }

// Bytes returns the underlying address bytes, with the tag dropped — this
// is exactly what the binary and JSON codecs persist (§4.1).
func (h Holder) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, h.addr[:])
	return b
}

// Compare orders holders by (kind, address bytes); ties never occur
// because comparing two holders of the same kind falls back to comparing
// distinct address bytes (or they are the same holder).
func (h Holder) Compare(other Holder) int {
	if h.kind != other.kind {
		if h.kind < other.kind {
			return -1
		}
		return 1
	}
	return bytes.Compare(h.addr[:], other.addr[:])
}

// AsAccount views a holder's bytes as an account address, irrespective of
// its actual tag. This is a tag-discarding projection, not a safe cast: it
// is intended for RPC/JSON boundaries where the caller already knows the
// intended kind out of band. Calling it on a contract holder is a caller
// bug, not an error this package detects.
func (h Holder) AsAccount() Address[AAccount] {
	return Address[AAccount]{bytes: h.addr}
}

// AsContract views a holder's bytes as a contract address, irrespective of
// its actual tag. See AsAccount for the same caveat.
func (h Holder) AsContract() Address[AContract] {
	return Address[AContract]{bytes: h.addr}
}

// String renders the holder using its own tag for display purposes
// (debugging, logs) — the base58 text includes the real kind. This is
// distinct from the JSON encoding (see the asset package's codec), which
// deliberately collapses both kinds to the same shape.
func (h Holder) String() string {
	kind := KindAccount
	if h.kind == HolderContract {
		kind = KindContract
	}
	return encodeText(kind, h.addr[:])
}

type errInvalidHolderLength int

func (e errInvalidHolderLength) Error() string {
	return "address: invalid holder byte length"
}
