package table

import (
	"fmt"
	"strconv"
)

// Value is the typed result of normalizing one raw cell. Downstream stages
// consume Values only; raw cell text is never re-inspected after
// normalization.
type Value struct {
	Type      ValueType `json:"type"`
	TextVal   *string   `json:"text_val,omitempty"`
	NumberVal *float64  `json:"number_val,omitempty"`
	IsNull    bool      `json:"is_null"`
}

// ValueType defines the storage type for normalized cells
type ValueType string

const (
	ValueTypeText   ValueType = "text"
	ValueTypeNumber ValueType = "number"
	ValueTypeNull   ValueType = "null"
)

// NewTextValue creates a text value; empty text collapses to null
func NewTextValue(s string) Value {
	if s == "" {
		return NullValue()
	}
	return Value{Type: ValueTypeText, TextVal: &s}
}

// NewNumberValue creates a numeric value
func NewNumberValue(n float64) Value {
	return Value{Type: ValueTypeNumber, NumberVal: &n}
}

// NullValue creates a null (blank cell) value
func NullValue() Value {
	return Value{Type: ValueTypeNull, IsNull: true}
}

// IsNumber returns true if the value holds a valid number
func (v Value) IsNumber() bool {
	return v.Type == ValueTypeNumber && v.NumberVal != nil
}

// IsText returns true if the value holds text
func (v Value) IsText() bool {
	return v.Type == ValueTypeText && v.TextVal != nil
}

// AsFloat64 returns the numeric value, or 0 if not a number
func (v Value) AsFloat64() float64 {
	if v.NumberVal != nil {
		return *v.NumberVal
	}
	return 0.0
}

// AsText returns the text value, or empty string if not text
func (v Value) AsText() string {
	if v.TextVal != nil {
		return *v.TextVal
	}
	return ""
}

// Render returns the display form of the value. Numbers use the shortest
// representation that round-trips; null renders as the empty string.
func (v Value) Render() string {
	switch v.Type {
	case ValueTypeText:
		return v.AsText()
	case ValueTypeNumber:
		return strconv.FormatFloat(v.AsFloat64(), 'f', -1, 64)
	}
	return ""
}

// String returns a debug representation of the value
func (v Value) String() string {
	switch v.Type {
	case ValueTypeText:
		if v.TextVal != nil {
			return *v.TextVal
		}
	case ValueTypeNumber:
		if v.NumberVal != nil {
			return fmt.Sprintf("%g", *v.NumberVal)
		}
	case ValueTypeNull:
		return "<null>"
	}
	return "<invalid>"
}

// Equal reports whether two values have the same type and content. Type is
// part of identity: number 2020 and text "2020" are not equal.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case ValueTypeText:
		return v.AsText() == o.AsText()
	case ValueTypeNumber:
		return v.AsFloat64() == o.AsFloat64()
	}
	return true // both null
}
