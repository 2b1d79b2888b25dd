package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartpipe/domain/chart"
	"chartpipe/domain/table"
	"chartpipe/internal/errors"
	"chartpipe/internal/normalize"
	"chartpipe/internal/sanitize"
	"chartpipe/internal/testkit"
)

func cruiseTable(t *testing.T) *table.CleanTable {
	t.Helper()
	s := sanitize.NewSanitizer(normalize.NewCellNormalizer(normalize.DefaultConfig()))
	cleaned, err := s.Sanitize(testkit.CruiseSheet(), sanitize.DefaultOptions())
	require.NoError(t, err)
	return cleaned
}

func TestResolvePieSuccess(t *testing.T) {
	cleaned := cruiseTable(t)

	spec, err := NewResolver().Resolve(cleaned, chart.ChartTypePie, chart.RoleMapping{
		chart.RoleLabel: "Cruise Line",
		chart.RoleValue: "Capacity",
	})
	require.NoError(t, err)

	assert.Equal(t, chart.ChartTypePie, spec.ChartType)
	assert.Equal(t, "Cruise Line", spec.Column(chart.RoleLabel))
	assert.True(t, spec.BoundTo(cleaned), "spec must be bound to the validated table")
}

func TestResolveMissingRole(t *testing.T) {
	cleaned := cruiseTable(t)

	_, err := NewResolver().Resolve(cleaned, chart.ChartTypePie, chart.RoleMapping{
		chart.RoleLabel: "Cruise Line",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingRole, errors.GetCode(err))
	assert.Contains(t, err.Error(), "value")
}

func TestResolveUnexpectedRole(t *testing.T) {
	cleaned := cruiseTable(t)

	_, err := NewResolver().Resolve(cleaned, chart.ChartTypePie, chart.RoleMapping{
		chart.RoleLabel: "Cruise Line",
		chart.RoleValue: "Capacity",
		"extra":         "Capacity",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnexpectedRole, errors.GetCode(err))
	assert.Contains(t, err.Error(), "extra")
}

func TestResolveUnknownColumn(t *testing.T) {
	cleaned := cruiseTable(t)

	_, err := NewResolver().Resolve(cleaned, chart.ChartTypeBar, chart.RoleMapping{
		chart.RoleXAxis: "Cruise Line",
		chart.RoleYAxis: "Tonnage",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownColumn, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Tonnage")
}

func TestResolveNonNumericAxis(t *testing.T) {
	s := sanitize.NewSanitizer(normalize.NewCellNormalizer(normalize.DefaultConfig()))
	cleaned, err := s.Sanitize(testkit.Sheet("S", [][]string{
		{"Year", "Amount"},
		{"2019", "100"},
		{"abc", "200"},
	}), sanitize.DefaultOptions())
	require.NoError(t, err)

	// "Year" holds a text value ("abc"), so it cannot serve as the summed
	// bar axis.
	_, err = NewResolver().Resolve(cleaned, chart.ChartTypeBar, chart.RoleMapping{
		chart.RoleXAxis: "Amount",
		chart.RoleYAxis: "Year",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNonNumericAxis, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Year")
}

func TestResolveNonNumericValue(t *testing.T) {
	cleaned := cruiseTable(t)

	_, err := NewResolver().Resolve(cleaned, chart.ChartTypePie, chart.RoleMapping{
		chart.RoleLabel: "Capacity",
		chart.RoleValue: "Cruise Line",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNonNumericValue, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Cruise Line")
}

func TestResolveNullOnlyValueColumnIsNumeric(t *testing.T) {
	s := sanitize.NewSanitizer(normalize.NewCellNormalizer(normalize.DefaultConfig()))
	cleaned, err := s.Sanitize(testkit.Sheet("S", [][]string{
		{"Label", "Value"},
		{"a", ""},
		{"b", ""},
	}), sanitize.DefaultOptions())
	require.NoError(t, err)

	// All-null value column validates: every row contributes zero.
	_, err = NewResolver().Resolve(cleaned, chart.ChartTypePie, chart.RoleMapping{
		chart.RoleLabel: "Label",
		chart.RoleValue: "Value",
	})
	assert.NoError(t, err)
}
