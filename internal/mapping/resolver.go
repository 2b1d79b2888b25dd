// Package mapping validates user column-to-role assignments against a
// CleanTable's schema and the chosen chart type's requirements.
package mapping

import (
	"sort"
	"strings"

	"chartpipe/domain/chart"
	"chartpipe/domain/table"
	"chartpipe/internal/errors"
)

// Resolver validates role mappings into chart specs
type Resolver struct{}

// NewResolver creates a mapping resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve validates the role mapping for the chart type against the table
// schema and returns a ChartSpec bound to that exact table instance. No
// partial spec is ever returned on failure.
func (r *Resolver) Resolve(t *table.CleanTable, chartType chart.ChartType, roleMapping chart.RoleMapping) (chart.ChartSpec, error) {
	required := chartType.RequiredRoles()
	if required == nil {
		return chart.ChartSpec{}, errors.InvalidInput("unsupported chart type " + string(chartType))
	}

	if err := r.checkRoleSet(chartType, required, roleMapping); err != nil {
		return chart.ChartSpec{}, err
	}

	for _, role := range required {
		column := roleMapping[role]
		if !t.HasColumn(column) {
			return chart.ChartSpec{}, errors.Newf(errors.CodeUnknownColumn,
				"column %q (role %s) does not exist in sheet %q", column, role, t.SheetName)
		}
	}

	for _, role := range chartType.NumericRoles() {
		column := roleMapping[role]
		if _, ok := t.NumericColumn(column); !ok {
			code := errors.CodeNonNumericValue
			if role == chart.RoleYAxis {
				code = errors.CodeNonNumericAxis
			}
			return chart.ChartSpec{}, errors.Newf(code,
				"column %q (role %s) contains non-numeric values", column, role)
		}
	}

	spec := chart.ChartSpec{
		ChartType: chartType,
		Mapping:   make(chart.RoleMapping, len(roleMapping)),
		TableID:   t.ID,
	}
	for role, column := range roleMapping {
		spec.Mapping[role] = column
	}
	return spec, nil
}

// checkRoleSet enforces that the mapping holds exactly the required roles
func (r *Resolver) checkRoleSet(chartType chart.ChartType, required []chart.Role, roleMapping chart.RoleMapping) error {
	var missing []string
	for _, role := range required {
		if _, ok := roleMapping[role]; !ok {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.CodeMissingRole,
			"%s chart is missing required role(s): %s", chartType, strings.Join(missing, ", "))
	}

	requiredSet := make(map[chart.Role]bool, len(required))
	for _, role := range required {
		requiredSet[role] = true
	}
	var extra []string
	for role := range roleMapping {
		if !requiredSet[role] {
			extra = append(extra, string(role))
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return errors.Newf(errors.CodeUnexpectedRole,
			"%s chart does not accept role(s): %s", chartType, strings.Join(extra, ", "))
	}
	return nil
}
