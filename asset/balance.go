package asset

import "math"

// Balance is a signed fixed-point quantity: a count of the smallest unit
// an asset's type defines, scaled by Scale when displayed (§3).
//
// All ledger arithmetic is 64-bit signed integer; no float ever appears on
// a path that could affect two nodes' agreement on ledger state (§4.4).
type Balance int64

const (
	// MaxBalance is the largest magnitude a Balance may take in either
	// direction: the range is [-(2^63-1), 2^63-1], deliberately excluding
	// math.MinInt64 so that negation is always representable (§3).
	MaxBalance Balance = math.MaxInt64

	// Scale is the fixed-point divisor applied when rendering a
	// Fractional balance for display (§3).
	Scale Balance = 1e7
)

// InRange reports whether b falls within the ledger's representable
// magnitude.
func (b Balance) InRange() bool {
	return b >= -MaxBalance && b <= MaxBalance
}
