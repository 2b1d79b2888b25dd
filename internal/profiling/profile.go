// Package profiling computes per-column summaries for the data preview
// surface: counts for every column, summary statistics and a normality hint
// for numeric ones.
package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"chartpipe/domain/table"
	"chartpipe/internal/errors"
)

// Summary holds the numeric summary statistics of a column
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// ColumnProfile describes one column of a CleanTable
type ColumnProfile struct {
	Name        string   `json:"name"`
	Numeric     bool     `json:"numeric"`
	RowCount    int      `json:"row_count"`
	NullCount   int      `json:"null_count"`
	UniqueCount int      `json:"unique_count"`
	Summary     *Summary `json:"summary,omitempty"`
	IsNormal    bool     `json:"is_normal"`
	NormalityP  float64  `json:"normality_p"`
}

// Profiler computes column profiles
type Profiler struct{}

// NewProfiler creates a profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileColumn profiles one column of the table
func (p *Profiler) ProfileColumn(t *table.CleanTable, column string) (ColumnProfile, error) {
	values, ok := t.Column(column)
	if !ok {
		return ColumnProfile{}, errors.Newf(errors.CodeUnknownColumn,
			"column %q does not exist in sheet %q", column, t.SheetName)
	}

	profile := ColumnProfile{Name: column, RowCount: len(values)}

	unique := make(map[string]bool, len(values))
	var nums []float64
	numeric := true
	for _, v := range values {
		if v.IsNull {
			profile.NullCount++
			continue
		}
		unique[string(v.Type)+"\x00"+v.Render()] = true
		if v.IsNumber() {
			nums = append(nums, v.AsFloat64())
		} else {
			numeric = false
		}
	}
	profile.UniqueCount = len(unique)
	profile.Numeric = numeric && len(nums) > 0

	if !profile.Numeric || len(nums) == 0 {
		return profile, nil
	}

	summary, err := summarize(nums)
	if err != nil {
		return ColumnProfile{}, errors.Wrapf(err, "failed to summarize column %q", column)
	}
	profile.Summary = summary
	profile.IsNormal, profile.NormalityP = testNormality(nums, summary.Mean, summary.StdDev)

	return profile, nil
}

func summarize(data []float64) (*Summary, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Mean: mean, StdDev: stdDev, Min: min, Max: max, Median: median}

	// Percentile needs at least a few points; a short column just keeps
	// quartiles at the median.
	if len(data) >= 4 {
		if q25, err := stats.Percentile(data, 25); err == nil {
			summary.Q25 = q25
		}
		if q75, err := stats.Percentile(data, 75); err == nil {
			summary.Q75 = q75
		}
	} else {
		summary.Q25 = median
		summary.Q75 = median
	}
	return summary, nil
}

// testNormality approximates a normality test from skewness and excess
// kurtosis, with the p-value taken from a chi-squared distribution.
func testNormality(data []float64, mean, stdDev float64) (isNormal bool, pValue float64) {
	if len(data) < 3 || stdDev == 0 {
		return false, 1.0
	}

	skewness := sampleSkewness(data, mean, stdDev)
	kurtosis := sampleKurtosis(data, mean, stdDev)

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)

	return pValue > 0.05, pValue
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	return (sum / n) * math.Sqrt(n*(n-1)) / (n - 2)
}

// sampleKurtosis computes bias-corrected total kurtosis
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}

	excess := sum/n - 3
	correction := (n - 1) / ((n - 2) * (n - 3))
	return excess*correction + 6/(n+1) + 3
}
