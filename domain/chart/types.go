package chart

import (
	"fmt"

	"chartpipe/domain/core"
	"chartpipe/domain/table"
)

// ChartType identifies a supported chart kind
type ChartType string

const (
	ChartTypePie ChartType = "pie"
	ChartTypeBar ChartType = "bar"
)

// ParseChartType parses a user-supplied chart type string
func ParseChartType(s string) (ChartType, error) {
	switch ChartType(s) {
	case ChartTypePie:
		return ChartTypePie, nil
	case ChartTypeBar:
		return ChartTypeBar, nil
	}
	return "", fmt.Errorf("unsupported chart type %q (want %q or %q)", s, ChartTypePie, ChartTypeBar)
}

// Role is a named slot a chart type requires a column for
type Role string

const (
	RoleLabel Role = "label"
	RoleValue Role = "value"
	RoleXAxis Role = "xAxis"
	RoleYAxis Role = "yAxis"
)

// RequiredRoles returns the exact role set a chart type needs, in
// presentation order
func (ct ChartType) RequiredRoles() []Role {
	switch ct {
	case ChartTypePie:
		return []Role{RoleLabel, RoleValue}
	case ChartTypeBar:
		return []Role{RoleXAxis, RoleYAxis}
	}
	return nil
}

// NumericRoles returns the roles whose mapped column must be fully numeric
func (ct ChartType) NumericRoles() []Role {
	switch ct {
	case ChartTypePie:
		return []Role{RoleValue}
	case ChartTypeBar:
		return []Role{RoleYAxis}
	}
	return nil
}

// RoleMapping assigns a column name to each role
type RoleMapping map[Role]string

// ChartSpec is a validated binding of table columns to a chart type's roles.
// It is bound to the specific CleanTable it was validated against; if the
// table is recomputed the spec must be re-resolved.
type ChartSpec struct {
	ChartType ChartType    `json:"chart_type"`
	Mapping   RoleMapping  `json:"mapping"`
	TableID   core.TableID `json:"table_id"`
}

// Column returns the column name mapped to the given role
func (s ChartSpec) Column(role Role) string {
	return s.Mapping[role]
}

// BoundTo reports whether the spec was validated against the given table
func (s ChartSpec) BoundTo(t *table.CleanTable) bool {
	return s.TableID == t.ID
}

// SeriesPoint is one aggregated (key, value) pair. The key keeps its
// normalized type: Bar groups a numeric 2020 and a textual "2020" separately.
type SeriesPoint struct {
	Key   table.Value `json:"key"`
	Value float64     `json:"value"`
}

// Label returns the display form of the point's key
func (p SeriesPoint) Label() string {
	return p.Key.Render()
}

// Series is the final aggregated sequence handed to the rendering layer.
// An empty Series is a valid "no data" result, not an error.
type Series struct {
	ChartType ChartType     `json:"chart_type"`
	Points    []SeriesPoint `json:"points"`
}

// IsEmpty reports whether the series has no points
func (s Series) IsEmpty() bool {
	return len(s.Points) == 0
}

// Total returns the sum of all point values
func (s Series) Total() float64 {
	sum := 0.0
	for _, p := range s.Points {
		sum += p.Value
	}
	return sum
}
