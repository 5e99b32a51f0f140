package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"sales-insight/internal/model"
)

// ResultRow is one line of a result: a group key and its summed metric.
// Scalar results have a single row with an empty key.
type ResultRow struct {
	Key   string          `json:"key,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// Result is the table produced by Execute.
type Result struct {
	Metric model.Metric `json:"metric"`
	// Dimension is empty for scalar results.
	Dimension model.Dimension `json:"dimension,omitempty"`
	Rows      []ResultRow     `json:"rows"`
}

// Empty reports whether no rows survived filtering (or grouping).
func (r *Result) Empty() bool { return r == nil || len(r.Rows) == 0 }

// Scalar reports whether r is a single total rather than a grouped table.
func (r *Result) Scalar() bool { return r != nil && r.Dimension == "" }

// Execute runs params against table. The table is never modified; every call
// works on its own filtered copy of the rows, so concurrent calls are safe.
//
// Pipeline: time window → filters → top-N | group | scalar sum.
func Execute(table *model.Table, params Params) *Result {
	dim, grouped := params.Dimension()
	res := &Result{Metric: params.Metric, Dimension: dim, Rows: []ResultRow{}}

	rows := applyTimeWindow(table, table.Rows(), params.TimeWindow)
	rows = applyFilters(table, rows, params.Filters)
	if len(rows) == 0 {
		return res
	}

	switch {
	case params.TopN != nil:
		if !table.Has(dim.Column()) {
			return res
		}
		groups := groupSum(rows, dim, params.Metric)
		sortByValueDesc(groups)
		if params.TopN.N < len(groups) {
			groups = groups[:params.TopN.N]
		}
		res.Rows = groups
	case grouped:
		if !table.Has(dim.Column()) {
			return res
		}
		groups := groupSum(rows, dim, params.Metric)
		if dim == model.DimMonthName {
			sortByCalendarMonth(groups)
		} else {
			sortByValueDesc(groups)
		}
		res.Rows = groups
	default:
		res.Rows = []ResultRow{{Value: sumMetric(rows, params.Metric)}}
	}
	return res
}

// applyTimeWindow keeps rows dated inside w. Undated rows are dropped when a
// window applies; tables without a date column ignore the window entirely.
func applyTimeWindow(table *model.Table, rows []model.Row, w *TimeWindow) []model.Row {
	if w == nil || !table.HasDates() {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if r.HasDate() && w.Contains(r.OrderDate) {
			out = append(out, r)
		}
	}
	return out
}

// applyFilters keeps rows whose column equals the filter value, ignoring
// case. Filters on columns the table lacks are ignored.
func applyFilters(table *model.Table, rows []model.Row, filters Filters) []model.Row {
	for col, want := range filters {
		if !table.Has(col) {
			continue
		}
		out := rows[:0]
		for _, r := range rows {
			if strings.EqualFold(r.Text(col), want) {
				out = append(out, r)
			}
		}
		rows = out
	}
	return rows
}

// groupSum sums metric per distinct value of dim, in first-seen order.
// Rows with an empty key are skipped; null amounts count as zero.
func groupSum(rows []model.Row, dim model.Dimension, metric model.Metric) []ResultRow {
	col := dim.Column()
	index := map[string]int{}
	out := []ResultRow{}
	for _, r := range rows {
		key := r.Text(col)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, ResultRow{Key: key, Value: decimal.Zero})
		}
		if amt := r.Amount(metric); amt.Valid {
			out[i].Value = out[i].Value.Add(amt.Decimal)
		}
	}
	return out
}

func sumMetric(rows []model.Row, metric model.Metric) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if amt := r.Amount(metric); amt.Valid {
			total = total.Add(amt.Decimal)
		}
	}
	return total
}

// sortByValueDesc is stable: equal sums keep first-seen order.
func sortByValueDesc(groups []ResultRow) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value.GreaterThan(groups[j].Value)
	})
}

func sortByCalendarMonth(groups []ResultRow) {
	sort.SliceStable(groups, func(i, j int) bool {
		return model.MonthIndex(groups[i].Key) < model.MonthIndex(groups[j].Key)
	})
}
