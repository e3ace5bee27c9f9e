package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice extracts a minor-unit amount from a currency-formatted string.
// Currency symbols, codes, thousands separators and whitespace are stripped;
// the remainder is parsed as a decimal and scaled to cents. Unparseable input
// yields 0. The result is never negative; outflow sign is applied by the
// normalizer.
func ParsePrice(text string) int64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}

	return int64(math.Round(value * 100))
}
