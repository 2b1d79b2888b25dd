package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueConstructors(t *testing.T) {
	v := NewTextValue("hello")
	assert.True(t, v.IsText())
	assert.Equal(t, "hello", v.AsText())

	// Empty text collapses to null.
	assert.True(t, NewTextValue("").IsNull)

	n := NewNumberValue(42.5)
	assert.True(t, n.IsNumber())
	assert.Equal(t, 42.5, n.AsFloat64())

	assert.True(t, NullValue().IsNull)
}

func TestValueRender(t *testing.T) {
	assert.Equal(t, "hello", NewTextValue("hello").Render())
	assert.Equal(t, "", NullValue().Render())

	// Numbers render without a trailing zero tail.
	assert.Equal(t, "1200", NewNumberValue(1200).Render())
	assert.Equal(t, "0.5", NewNumberValue(0.5).Render())
	assert.Equal(t, "-45", NewNumberValue(-45).Render())
	assert.Equal(t, "1234.5", NewNumberValue(1234.5).Render())
}

func TestValueEqualTypeIdentity(t *testing.T) {
	// The type participates in identity: number 2020 is not text "2020".
	assert.False(t, NewNumberValue(2020).Equal(NewTextValue("2020")))
	assert.True(t, NewNumberValue(2020).Equal(NewNumberValue(2020)))
	assert.True(t, NewTextValue("a").Equal(NewTextValue("a")))
	assert.False(t, NewTextValue("a").Equal(NewTextValue("b")))
	assert.True(t, NullValue().Equal(NullValue()))
	assert.False(t, NullValue().Equal(NewNumberValue(0)))
}

func TestCleanTableNumericColumn(t *testing.T) {
	ct := &CleanTable{
		ID:        "t1",
		SheetName: "S",
		Columns:   []string{"A", "B", "C"},
		Rows: []Row{
			{"A": NewNumberValue(1), "B": NewTextValue("x"), "C": NullValue()},
			{"A": NullValue(), "B": NewNumberValue(2), "C": NullValue()},
		},
	}

	nums, ok := ct.NumericColumn("A")
	assert.True(t, ok, "nulls do not break a numeric column")
	assert.Equal(t, []float64{1}, nums)

	_, ok = ct.NumericColumn("B")
	assert.False(t, ok)

	nums, ok = ct.NumericColumn("C")
	assert.True(t, ok, "an all-null column counts as numeric")
	assert.Empty(t, nums)

	_, ok = ct.NumericColumn("missing")
	assert.False(t, ok)
}
