// Command cli runs the chart pipeline once and prints the aggregated series
// as JSON: spreadsheet in, render-ready data out. Meant for scripting and
// for checking a mapping without starting the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chartpipe/adapters/excel"
	"chartpipe/app"
	"chartpipe/domain/chart"
	"chartpipe/internal/errors"
	"chartpipe/internal/sanitize"
)

func main() {
	var (
		file      = flag.String("file", "", "spreadsheet file to load (.xlsx or .csv)")
		sheet     = flag.String("sheet", "", "sheet name (defaults to the first sheet)")
		headerRow = flag.Int("header-row", 0, "0-based header row index")
		noHeader  = flag.Bool("no-header", false, "treat the header row index as the first data row; columns get placeholder names")
		chartKind = flag.String("chart", "pie", "chart type: pie or bar")
		label     = flag.String("label", "", "label column (pie)")
		value     = flag.String("value", "", "value column (pie)")
		xAxis     = flag.String("x", "", "x-axis column (bar)")
		yAxis     = flag.String("y", "", "y-axis column (bar)")
		order     = flag.String("order", "", "comma-separated pie slice order (optional)")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	chartType, err := chart.ParseChartType(*chartKind)
	if err != nil {
		log.Fatalf("invalid -chart: %v", err)
	}

	roleMapping := chart.RoleMapping{}
	switch chartType {
	case chart.ChartTypePie:
		if *label != "" {
			roleMapping[chart.RoleLabel] = *label
		}
		if *value != "" {
			roleMapping[chart.RoleValue] = *value
		}
	case chart.ChartTypeBar:
		if *xAxis != "" {
			roleMapping[chart.RoleXAxis] = *xAxis
		}
		if *yAxis != "" {
			roleMapping[chart.RoleYAxis] = *yAxis
		}
	}

	var labelOrder []string
	if *order != "" {
		for _, l := range strings.Split(*order, ",") {
			labelOrder = append(labelOrder, strings.TrimSpace(l))
		}
	}

	service := app.NewChartService(excel.NewWorkbookLoader())
	series, err := service.SeriesFromFile(*file, *sheet,
		sanitize.Options{HeaderRowIndex: *headerRow, HasHeader: !*noHeader},
		app.ChartRequest{ChartType: chartType, Mapping: roleMapping, LabelOrder: labelOrder},
	)
	if err != nil {
		log.Fatalf("[%s] %v", errors.GetCode(err), err)
	}

	out, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode series: %v", err)
	}
	fmt.Println(string(out))
}
