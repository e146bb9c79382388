package asset

import (
	"encoding/binary"
	"sort"
)

// Packed is the consensus-critical binary encoding of an Asset (§4.5). A
// single byte of difference between two implementations' Packed output for
// the same Asset is a consensus bug.
type Packed []byte

// Pack encodes a into its deterministic binary wire form (§4.5): fields in
// declaration order, big-endian naturals, 16-bit length-prefixed text.
//
// Unlike transactionrecord's Pack, this never fails: every field of Asset
// is already well-formed by construction (address, metadata validity are
// the caller's responsibility per §4.2), so there is no signature step and
// no rejection path.
func (a Asset) Pack() Packed {
	buf := make(Packed, 0, 128)
	buf = appendString(buf, a.Name)
	buf = append(buf, a.Issuer.Bytes()...)
	buf = appendInt64(buf, a.IssuedOn.UnixNano())
	buf = appendInt64(buf, int64(a.Supply))
	buf = appendHoldings(buf, a.Holdings)
	buf = appendOptionalRef(buf, a.Reference)
	buf = appendAssetType(buf, a.AssetType)
	buf = append(buf, a.Address.Bytes()...)
	buf = appendMetadata(buf, a.Metadata)
	return buf
}

func appendUint16(buf Packed, n int) Packed {
	var length [2]byte
	binary.BigEndian.PutUint16(length[:], uint16(n))
	return append(buf, length[:]...)
}

func appendString(buf Packed, s string) Packed {
	buf = appendUint16(buf, len(s))
	return append(buf, s...)
}

func appendInt64(buf Packed, v int64) Packed {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return append(buf, b[:]...)
}

func appendUint64Field(buf Packed, v uint64) Packed {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

// appendHoldings writes the (holder, balance) pairs in ascending holder
// order so that two holdings maps with identical content always encode
// identically, regardless of Go's randomized map iteration order (§4.5,
// §8 property 8).
func appendHoldings(buf Packed, h Holdings) Packed {
	ordered := h.sortedHolders()
	buf = appendUint64Field(buf, uint64(len(ordered)))
	for _, holder := range ordered {
		buf = append(buf, holder.Bytes()...)
		buf = appendInt64(buf, int64(h[holder]))
	}
	return buf
}

func appendOptionalRef(buf Packed, r *Ref) Packed {
	if r == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	return appendString(buf, string(*r))
}

func appendAssetType(buf Packed, t AssetType) Packed {
	switch t.Kind() {
	case Discrete:
		return appendString(buf, "Discrete")
	case Binary:
		return appendString(buf, "Binary")
	case Fractional:
		buf = appendString(buf, "Fractional")
		return append(buf, t.Precision())
	default:
		panic("asset: unknown AssetType kind in Pack")
	}
}

func appendMetadata(buf Packed, m map[string]string) Packed {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf = appendUint64Field(buf, uint64(len(keys)))
	for _, k := range keys {
		buf = appendString(buf, k)
		buf = appendString(buf, m[k])
	}
	return buf
}
