package asset

import "fmt"

// Kind enumerates the possible AssetType variants (§3).
type Kind int

const (
	Discrete Kind = iota
	Binary
	Fractional
)

func (k Kind) String() string {
	switch k {
	case Discrete:
		return "Discrete"
	case Binary:
		return "Binary"
	case Fractional:
		return "Fractional"
	default:
		return "Unknown"
	}
}

// AssetType tags an asset with its display/validity semantics. Precision
// is only meaningful when Kind is Fractional, and must then be in 1..7
// (§3).
type AssetType struct {
	kind      Kind
	precision uint8
}

// NewDiscrete builds a Discrete asset type: integer quantities, displayed
// as the raw integer.
func NewDiscrete() AssetType { return AssetType{kind: Discrete} }

// NewBinary builds a Binary asset type: only 0 or 1 are meaningful
// balances.
func NewBinary() AssetType { return AssetType{kind: Binary} }

// NewFractional builds a Fractional(precision) asset type. precision must
// be in 1..7; any other value is a programmer error (§3).
func NewFractional(precision uint8) (AssetType, error) {
	if precision < 1 || precision > 7 {
		return AssetType{}, fmt.Errorf("asset: fractional precision %d out of range 1..7", precision)
	}
	return AssetType{kind: Fractional, precision: precision}, nil
}

// Kind reports which variant this AssetType is.
func (t AssetType) Kind() Kind { return t.kind }

// Precision reports the decimal precision for a Fractional type. It is 0
// and meaningless for Discrete/Binary.
func (t AssetType) Precision() uint8 { return t.precision }

func (t AssetType) String() string {
	if t.kind == Fractional {
		return fmt.Sprintf("Fractional(%d)", t.precision)
	}
	return t.kind.String()
}
