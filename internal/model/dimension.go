package model

import (
	"strings"
	"time"
)

// Metric is the numeric column a question asks about.
// Keep these values stable; they appear in answers and API payloads.
type Metric string

const (
	MetricSales  Metric = "Sales"
	MetricProfit Metric = "Profit"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricSales, MetricProfit}

func (m Metric) Column() Column { return Column(m) }

// Dimension is a categorical column rows can be grouped by.
type Dimension string

const (
	DimRegion    Dimension = "Region"
	DimState     Dimension = "State"
	DimCategory  Dimension = "Category"
	DimProduct   Dimension = "Product"
	DimMonthName Dimension = "MonthName"
)

// Dimensions lists every grouping dimension in display order.
var Dimensions = []Dimension{DimRegion, DimState, DimCategory, DimProduct, DimMonthName}

func (d Dimension) Column() Column { return Column(d) }

// Rankable reports whether d can be used for a top-N ranking.
func (d Dimension) Rankable() bool {
	switch d {
	case DimRegion, DimState, DimCategory, DimProduct:
		return true
	}
	return false
}

// ParseMetric matches s case-insensitively against the known metrics.
func ParseMetric(s string) (Metric, bool) {
	for _, m := range Metrics {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, true
		}
	}
	return "", false
}

// ParseDimension matches s case-insensitively against the known dimensions.
// "month" is accepted as an alias of MonthName.
func ParseDimension(s string) (Dimension, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "month") {
		return DimMonthName, true
	}
	for _, d := range Dimensions {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// MonthShortName returns the three-letter English name of m ("Jan".."Dec").
func MonthShortName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return m.String()[:3]
}

// MonthIndex maps a short month name back to 1..12, or 0 if unknown.
func MonthIndex(name string) int {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(name, MonthShortName(m)) {
			return int(m)
		}
	}
	return 0
}
