package asset

import "strconv"

// Display renders a balance according to its asset type's display rules
// (§4.4). It is for human output only — never used on a consensus path.
func Display(t AssetType, b Balance) string {
	switch t.Kind() {
	case Discrete:
		return strconv.FormatInt(int64(b), 10)
	case Binary:
		if b > 0 {
			return "held"
		}
		return "not-held"
	case Fractional:
		// Matches the source's showFFloat (precision+1) behavior: the
		// rendered decimal count is one more than the asset's declared
		// precision. This is very likely an off-by-one in the original,
		// but it is preserved verbatim for operator-tooling wire
		// compatibility (§4.4, §9).
		return formatFixed(b, t.Precision()+1)
	default:
		return strconv.FormatInt(int64(b), 10)
	}
}

// formatFixed renders b/Scale with exactly decimals digits after the
// decimal point, in fixed (non-exponential) notation.
func formatFixed(b Balance, decimals uint8) string {
	negative := b < 0
	magnitude := int64(b)
	if negative {
		magnitude = -magnitude
	}

	whole := magnitude / int64(Scale)
	frac := magnitude % int64(Scale)

	// Scale is 10^7; render the full 7-digit fraction, then pad or trim to
	// the requested number of decimals.
	fracDigits := padLeft(strconv.FormatInt(frac, 10), 7)
	fracDigits = adjustDecimals(fracDigits, int(decimals))

	sign := ""
	if negative {
		sign = "-"
	}
	if decimals == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	return sign + strconv.FormatInt(whole, 10) + "." + fracDigits
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// adjustDecimals pads or truncates a 7-digit fractional string (the
// natural width of Scale = 10^7) to exactly n digits.
func adjustDecimals(sevenDigits string, n int) string {
	if n <= len(sevenDigits) {
		return sevenDigits[:n]
	}
	for len(sevenDigits) < n {
		sevenDigits += "0"
	}
	return sevenDigits
}
