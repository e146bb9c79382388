package asset

import "fmt"

// Ref is a symbolic off-chain reference unit an asset may optionally carry
// (§3). It is a closed enumeration — "Bitcoin" and any other string not
// in the list below is simply not constructible, matching
// scenario F in §8.
type Ref string

const (
	USD      Ref = "USD"
	GBP      Ref = "GBP"
	EUR      Ref = "EUR"
	CHF      Ref = "CHF"
	Token    Ref = "Token"
	Security Ref = "Security"
)

// IsValid reports whether r is one of the closed set of reference units.
func (r Ref) IsValid() bool {
	switch r {
	case USD, GBP, EUR, CHF, Token, Security:
		return true
	default:
		return false
	}
}

// ParseRef validates a string against the closed Ref enumeration, the way
// currency.fromString validates a currency symbol.
func ParseRef(s string) (Ref, error) {
	r := Ref(s)
	if !r.IsValid() {
		return "", fmt.Errorf("asset: %q is not a valid reference unit", s)
	}
	return r, nil
}

// MarshalText implements encoding.TextMarshaler (§4.6: Ref -> constructor
// name string).
func (r Ref) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("asset: %q is not a valid reference unit", string(r))
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ref) UnmarshalText(text []byte) error {
	parsed, err := ParseRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
