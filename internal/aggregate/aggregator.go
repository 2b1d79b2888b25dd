// Package aggregate reduces a CleanTable into the minimal series a chart
// needs: label/value pairs for pie, ordered x/y pairs for bar. One streaming
// pass over the rows, O(rows) time and memory.
package aggregate

import (
	"chartpipe/domain/chart"
	"chartpipe/domain/table"
	"chartpipe/internal/errors"
)

// Aggregator groups and sums table rows into chart series
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate reduces the table under the given spec. The spec must have been
// resolved against this exact table; a spec bound to a superseded table is
// rejected so the rendering layer can never show a stale mapping. An empty
// series (zero rows left after sanitization) is a valid result.
func (a *Aggregator) Aggregate(t *table.CleanTable, spec chart.ChartSpec) (chart.Series, error) {
	if !spec.BoundTo(t) {
		return chart.Series{}, errors.Newf(errors.CodeStaleChartSpec,
			"chart spec was validated against a different table revision; re-resolve the mapping")
	}

	switch spec.ChartType {
	case chart.ChartTypePie:
		return a.groupAndSum(t, spec.Column(chart.RoleLabel), spec.Column(chart.RoleValue), true), nil
	case chart.ChartTypeBar:
		return a.groupAndSum(t, spec.Column(chart.RoleXAxis), spec.Column(chart.RoleYAxis), false), nil
	}
	return chart.Series{}, errors.InvalidInput("unsupported chart type " + string(spec.ChartType))
}

// blankLabel is the bucket for rows whose key cell is null
const blankLabel = "(blank)"

// groupAndSum folds rows into (key, sum) points in first-appearance order.
// With textKeys set (pie) every key is coerced to its text rendering; without
// it (bar) the key keeps its normalized type, so a numeric 2020 and a
// textual "2020" stay distinct groups. Null summed values contribute zero
// but do not exclude the row from grouping.
func (a *Aggregator) groupAndSum(t *table.CleanTable, keyColumn, sumColumn string, textKeys bool) chart.Series {
	chartType := chart.ChartTypeBar
	if textKeys {
		chartType = chart.ChartTypePie
	}

	points := make([]chart.SeriesPoint, 0, len(t.Rows))
	index := make(map[string]int, len(t.Rows))

	for _, row := range t.Rows {
		key := row[keyColumn]
		if key.IsNull {
			key = table.NewTextValue(blankLabel)
		} else if textKeys {
			key = table.NewTextValue(key.Render())
		}

		contribution := 0.0
		if v := row[sumColumn]; v.IsNumber() {
			contribution = v.AsFloat64()
		}

		id := groupKey(key)
		if at, seen := index[id]; seen {
			points[at].Value += contribution
			continue
		}
		index[id] = len(points)
		points = append(points, chart.SeriesPoint{Key: key, Value: contribution})
	}

	return chart.Series{ChartType: chartType, Points: points}
}

// groupKey builds the group identity for a normalized value. Type is part of
// the identity on purpose; see the bar grouping note on groupAndSum.
func groupKey(v table.Value) string {
	return string(v.Type) + "\x00" + v.Render()
}

// ReorderByLabel reorders a series to follow the given label order. Labels
// absent from the order keep their first-appearance position at the tail;
// labels in the order that have no point are skipped.
func ReorderByLabel(s chart.Series, order []string) chart.Series {
	if len(order) == 0 {
		return s
	}

	byLabel := make(map[string]int, len(s.Points))
	for i, p := range s.Points {
		byLabel[p.Label()] = i
	}

	taken := make([]bool, len(s.Points))
	points := make([]chart.SeriesPoint, 0, len(s.Points))
	for _, label := range order {
		if i, ok := byLabel[label]; ok && !taken[i] {
			points = append(points, s.Points[i])
			taken[i] = true
		}
	}
	for i, p := range s.Points {
		if !taken[i] {
			points = append(points, p)
		}
	}

	return chart.Series{ChartType: s.ChartType, Points: points}
}
