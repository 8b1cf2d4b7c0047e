package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Money is a non-negative monetary amount in cents.
type Money int64

var moneyPattern = regexp.MustCompile(`^([0-9]{1,15})?(\.[0-9]{1,2})?$`)

// ParseMoney parses a budget string such as "1500.50", "$1,200" or "0.5".
// It rejects empty input, negative values and more than two fraction digits.
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" || raw == "." {
		return 0, fmt.Errorf("budget %q is not a number", s)
	}
	m := moneyPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("budget %q must be a non-negative amount with at most two decimals", s)
	}

	var units, cents int64
	if m[1] != "" {
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("budget %q: %w", s, err)
		}
		units = v
	}
	if frac := strings.TrimPrefix(m[2], "."); frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		v, _ := strconv.ParseInt(frac, 10, 64)
		cents = v
	}
	return Money(units*100 + cents), nil
}

// Dollars returns the whole-unit part of m.
func (m Money) Dollars() int64 { return int64(m) / 100 }

// Cents returns the fractional part of m.
func (m Money) Cents() int64 { return int64(m) % 100 }

// String renders m as a plain decimal ("1500.50"), the form ParseMoney accepts.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.Dollars(), m.Cents())
}
