package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCents converts a decimal money string as transmitted by the remote
// platform ("499.00", "75", "1299.5") into cent precision. Amounts are
// never handled as floats.
func ParseCents(amount string) (int64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	cents := units * 100
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		cents += f
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatCents renders cents as a plain decimal string ("499.00").
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatRupees renders whole currency units with the ₹ prefix used in
// customer-facing copy. Fractions are truncated, matching the storefront.
func FormatRupees(cents int64) string {
	return fmt.Sprintf("₹%d", cents/100)
}
