// Package money handles shop amounts as int64 paise so arithmetic on
// rupee values stays exact. Callers parse external decimal strings with
// Parse and render stored values with Format.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidAmount reports a malformed or negative decimal string.
var ErrInvalidAmount = errors.New("invalid_amount")

// Parse converts a non-negative decimal string with at most two
// fractional digits into paise. It rejects signs, exponents, grouping
// separators and anything else strconv would quietly accept.
func Parse(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidAmount
	}

	whole := value
	frac := ""
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		whole = value[:idx]
		frac = value[idx+1:]
		if len(frac) == 0 || len(frac) > 2 {
			return 0, ErrInvalidAmount
		}
	}
	if whole == "" {
		return 0, ErrInvalidAmount
	}

	// Every step is bounds-checked so an oversized value errors instead
	// of wrapping past int64 into a negative amount.
	var paise int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
		if paise > (math.MaxInt64-9)/10 {
			return 0, ErrInvalidAmount
		}
		paise = paise*10 + int64(r-'0')
	}
	if paise > (math.MaxInt64-99)/100 {
		return 0, ErrInvalidAmount
	}
	paise *= 100

	switch len(frac) {
	case 1:
		d := frac[0]
		if d < '0' || d > '9' {
			return 0, ErrInvalidAmount
		}
		paise += int64(d-'0') * 10
	case 2:
		for i := 0; i < 2; i++ {
			d := frac[i]
			if d < '0' || d > '9' {
				return 0, ErrInvalidAmount
			}
		}
		paise += int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	}
	return paise, nil
}

// Format renders paise as a plain two-decimal string, e.g. 1050 -> "10.50".
func Format(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}
