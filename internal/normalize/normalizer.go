// Package normalize turns raw cell text into typed values. Normalization is
// a total function: anything that fails the numeric pattern degrades to
// text, never to an error, because partial and dirty data is the common case
// this tool exists to handle.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"chartpipe/domain/table"
)

// Config defines the normalization rules
type Config struct {
	CurrencySymbols    []string `json:"currency_symbols"`    // Leading symbols stripped before numeric parsing
	CollapseWhitespace bool     `json:"collapse_whitespace"` // Whether internal whitespace runs collapse to one space
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		CurrencySymbols:    []string{"$", "€", "£", "¥"},
		CollapseWhitespace: true,
	}
}

// CellNormalizer converts raw cell strings into typed Values
type CellNormalizer struct {
	config Config
}

// NewCellNormalizer creates a normalizer with the given config
func NewCellNormalizer(config Config) *CellNormalizer {
	return &CellNormalizer{config: config}
}

// numberPattern matches plain digits, correctly grouped thousands
// separators, an optional decimal part, and an optional exponent. Improperly
// grouped input like "12,34.5.6" does not match and falls back to text.
var numberPattern = regexp.MustCompile(`^(\d{1,3}(,\d{3})+|\d+)(\.\d+)?([eE][-+]?\d+)?$|^\.\d+$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize converts one raw cell into a typed Value.
//
//   - blank (after trimming) -> null
//   - currency/number pattern -> number; thousands separators removed, a
//     trailing percent sign divides by 100, parentheses negate
//   - anything else -> trimmed text with whitespace runs collapsed
func (n *CellNormalizer) Normalize(raw string) table.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.NullValue()
	}

	if num, ok := n.tryParseNumber(trimmed); ok {
		return table.NewNumberValue(num)
	}

	return table.NewTextValue(n.normalizeText(trimmed))
}

// tryParseNumber attempts the currency/number pattern against a trimmed cell
func (n *CellNormalizer) tryParseNumber(cell string) (float64, bool) {
	cleanVal := cell

	// Parenthesized negative: (45) -> -45
	negative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSpace(cleanVal[1 : len(cleanVal)-1])
		if cleanVal == "" {
			return 0, false
		}
		negative = true
	}

	// Explicit sign may appear before or after the currency symbol
	if strings.HasPrefix(cleanVal, "-") {
		negative = !negative
		cleanVal = strings.TrimSpace(cleanVal[1:])
	} else if strings.HasPrefix(cleanVal, "+") {
		cleanVal = strings.TrimSpace(cleanVal[1:])
	}

	for _, symbol := range n.config.CurrencySymbols {
		if strings.HasPrefix(cleanVal, symbol) {
			cleanVal = strings.TrimSpace(strings.TrimPrefix(cleanVal, symbol))
			break
		}
	}

	if strings.HasPrefix(cleanVal, "-") {
		negative = !negative
		cleanVal = strings.TrimSpace(cleanVal[1:])
	}

	percent := false
	if strings.HasSuffix(cleanVal, "%") {
		percent = true
		cleanVal = strings.TrimSpace(strings.TrimSuffix(cleanVal, "%"))
	}

	if !numberPattern.MatchString(cleanVal) {
		return 0, false
	}

	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}

	if percent {
		val /= 100
	}
	if negative {
		val = -val
	}
	return val, true
}

// normalizeText collapses internal whitespace runs to a single space
func (n *CellNormalizer) normalizeText(s string) string {
	if n.config.CollapseWhitespace {
		s = whitespaceRun.ReplaceAllString(s, " ")
	}
	return s
}
