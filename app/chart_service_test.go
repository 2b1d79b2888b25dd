package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartpipe/domain/chart"
	"chartpipe/internal/errors"
	"chartpipe/internal/sanitize"
	"chartpipe/internal/testkit"
)

func TestSeriesFromFileEndToEnd(t *testing.T) {
	source := &testkit.StaticWorkbookSource{
		Workbook: testkit.Workbook("capacity.xlsx", testkit.CruiseSheet()),
	}
	service := NewChartService(source)

	series, err := service.SeriesFromFile("capacity.xlsx", "", sanitize.DefaultOptions(), ChartRequest{
		ChartType: chart.ChartTypePie,
		Mapping: chart.RoleMapping{
			chart.RoleLabel: "Cruise Line",
			chart.RoleValue: "Capacity",
		},
	})
	require.NoError(t, err)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "Royal X", series.Points[0].Label())
	assert.Equal(t, 2000.0, series.Points[0].Value)
	assert.Equal(t, "(blank)", series.Points[1].Label())
	assert.Equal(t, 500.0, series.Points[1].Value)
}

func TestCleanSheetUnknownSheet(t *testing.T) {
	service := NewChartService(&testkit.StaticWorkbookSource{
		Workbook: testkit.Workbook("capacity.xlsx", testkit.CruiseSheet()),
	})

	wb, err := service.LoadWorkbook("capacity.xlsx")
	require.NoError(t, err)

	_, err = service.CleanSheet(wb, "Nope", sanitize.DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownSheet, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Nope")
}

func TestBuildSeriesInvalidMappingNeverAggregates(t *testing.T) {
	service := NewChartService(&testkit.StaticWorkbookSource{
		Workbook: testkit.Workbook("capacity.xlsx", testkit.CruiseSheet()),
	})

	wb, err := service.LoadWorkbook("capacity.xlsx")
	require.NoError(t, err)
	cleaned, err := service.CleanSheet(wb, "Capacity", sanitize.DefaultOptions())
	require.NoError(t, err)

	_, err = service.BuildSeries(cleaned, ChartRequest{
		ChartType: chart.ChartTypePie,
		Mapping:   chart.RoleMapping{chart.RoleLabel: "Cruise Line"},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingRole, errors.GetCode(err))
}

func TestBuildSeriesPieLabelOrder(t *testing.T) {
	service := NewChartService(&testkit.StaticWorkbookSource{
		Workbook: testkit.Workbook("capacity.xlsx", testkit.CruiseSheet()),
	})

	wb, err := service.LoadWorkbook("capacity.xlsx")
	require.NoError(t, err)
	cleaned, err := service.CleanSheet(wb, "Capacity", sanitize.DefaultOptions())
	require.NoError(t, err)

	series, err := service.BuildSeries(cleaned, ChartRequest{
		ChartType: chart.ChartTypePie,
		Mapping: chart.RoleMapping{
			chart.RoleLabel: "Cruise Line",
			chart.RoleValue: "Capacity",
		},
		LabelOrder: []string{"(blank)", "Royal X"},
	})
	require.NoError(t, err)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "(blank)", series.Points[0].Label())
	assert.Equal(t, "Royal X", series.Points[1].Label())
}

func TestSeriesFromFilePropagatesLoadErrors(t *testing.T) {
	service := NewChartService(&testkit.StaticWorkbookSource{
		Err: errors.UnreadableFile("broken.xlsx", nil),
	})

	_, err := service.SeriesFromFile("broken.xlsx", "", sanitize.DefaultOptions(), ChartRequest{
		ChartType: chart.ChartTypePie,
		Mapping: chart.RoleMapping{
			chart.RoleLabel: "Cruise Line",
			chart.RoleValue: "Capacity",
		},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnreadableFile, errors.GetCode(err))
}
