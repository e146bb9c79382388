package asset

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/adjoint-io/uplink/address"
)

// DecodeError reports a malformed binary record: truncated input, an
// unrecognized Ref literal, or an out-of-range AssetType tag. It is
// deliberately not part of the Error taxonomy in errors.go — decode
// failures happen before an Asset value exists, so they carry no holder or
// balance payload (§7).
type DecodeError string

func (e DecodeError) Error() string { return "asset: " + string(e) }

const errTruncated DecodeError = "truncated record"

// Unpack decodes a Packed record produced by Pack, per §4.5.
//
// Note: as with transactionrecord.Packed.Unpack, this reads past logical
// field boundaries only within record's bounds; any length prefix that
// would read past the end of record is reported as errTruncated rather
// than panicking, except for the final recover() guard below which turns
// any remaining index-out-of-range into the same error.
func (record Packed) Unpack() (a Asset, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = Asset{}
			err = errTruncated
		}
	}()

	n := 0

	name, n, err := readString(record, n)
	if err != nil {
		return Asset{}, err
	}

	issuerBytes, n, err := readFixed(record, n, address.Length)
	if err != nil {
		return Asset{}, err
	}
	issuer, err := address.FromBytes[address.AAccount](issuerBytes)
	if err != nil {
		return Asset{}, err
	}

	issuedOnNanos, n, err := readInt64(record, n)
	if err != nil {
		return Asset{}, err
	}

	supply, n, err := readInt64(record, n)
	if err != nil {
		return Asset{}, err
	}
	if !Balance(supply).InRange() {
		return Asset{}, DecodeError(fmt.Sprintf("supply %d out of representable range", supply))
	}

	holdings, n, err := readHoldings(record, n)
	if err != nil {
		return Asset{}, err
	}

	reference, n, err := readOptionalRef(record, n)
	if err != nil {
		return Asset{}, err
	}

	assetType, n, err := readAssetType(record, n)
	if err != nil {
		return Asset{}, err
	}

	addrBytes, n, err := readFixed(record, n, address.Length)
	if err != nil {
		return Asset{}, err
	}
	assetAddr, err := address.FromBytes[address.AAsset](addrBytes)
	if err != nil {
		return Asset{}, err
	}

	metadata, _, err := readMetadata(record, n)
	if err != nil {
		return Asset{}, err
	}

	return Asset{
		Name:      name,
		Issuer:    issuer,
		IssuedOn:  time.Unix(0, issuedOnNanos).UTC(),
		Supply:    Balance(supply),
		Holdings:  holdings,
		Reference: reference,
		AssetType: assetType,
		Address:   assetAddr,
		Metadata:  metadata,
	}, nil
}

func readFixed(record Packed, n, length int) ([]byte, int, error) {
	if n+length > len(record) {
		return nil, 0, errTruncated
	}
	return record[n : n+length], n + length, nil
}

func readUint16(record Packed, n int) (int, int, error) {
	raw, n, err := readFixed(record, n, 2)
	if err != nil {
		return 0, 0, err
	}
	return int(binary.BigEndian.Uint16(raw)), n, nil
}

func readString(record Packed, n int) (string, int, error) {
	length, n, err := readUint16(record, n)
	if err != nil {
		return "", 0, err
	}
	raw, n, err := readFixed(record, n, length)
	if err != nil {
		return "", 0, err
	}
	return string(raw), n, nil
}

func readInt64(record Packed, n int) (int64, int, error) {
	raw, n, err := readFixed(record, n, 8)
	if err != nil {
		return 0, 0, err
	}
	return int64(binary.BigEndian.Uint64(raw)), n, nil
}

func readUint64(record Packed, n int) (uint64, int, error) {
	raw, n, err := readFixed(record, n, 8)
	if err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint64(raw), n, nil
}

func readHoldings(record Packed, n int) (Holdings, int, error) {
	count, n, err := readUint64(record, n)
	if err != nil {
		return nil, 0, err
	}

	h := make(Holdings, count)
	for i := uint64(0); i < count; i++ {
		holderBytes, next, err := readFixed(record, n, address.Length)
		if err != nil {
			return nil, 0, err
		}
		n = next

		holder, err := address.HolderFromBytes(address.HolderAccount, holderBytes)
		if err != nil {
			return nil, 0, err
		}

		balance, next, err := readInt64(record, n)
		if err != nil {
			return nil, 0, err
		}
		n = next

		h.set(holder, Balance(balance))
	}
	return h, n, nil
}

func readOptionalRef(record Packed, n int) (*Ref, int, error) {
	tag, n, err := readFixed(record, n, 1)
	if err != nil {
		return nil, 0, err
	}
	if tag[0] == 0 {
		return nil, n, nil
	}

	s, n, err := readString(record, n)
	if err != nil {
		return nil, 0, err
	}
	r, err := ParseRef(s)
	if err != nil {
		return nil, 0, DecodeError(fmt.Sprintf("unrecognized reference unit %q", s))
	}
	return &r, n, nil
}

func readAssetType(record Packed, n int) (AssetType, int, error) {
	tag, n, err := readString(record, n)
	if err != nil {
		return AssetType{}, 0, err
	}
	switch tag {
	case "Discrete":
		return NewDiscrete(), n, nil
	case "Binary":
		return NewBinary(), n, nil
	case "Fractional":
		precisionByte, n, err := readFixed(record, n, 1)
		if err != nil {
			return AssetType{}, 0, err
		}
		t, err := NewFractional(precisionByte[0])
		if err != nil {
			return AssetType{}, 0, DecodeError(fmt.Sprintf("fractional precision out of range: %v", err))
		}
		return t, n, nil
	default:
		return AssetType{}, 0, DecodeError(fmt.Sprintf("unrecognized asset type tag %q", tag))
	}
}

func readMetadata(record Packed, n int) (map[string]string, int, error) {
	count, n, err := readUint64(record, n)
	if err != nil {
		return nil, 0, err
	}

	m := make(map[string]string, count)
	for i := uint64(0); i < count; i++ {
		key, next, err := readString(record, n)
		if err != nil {
			return nil, 0, err
		}
		n = next

		value, next, err := readString(record, n)
		if err != nil {
			return nil, 0, err
		}
		n = next

		m[key] = value
	}
	return m, n, nil
}
