package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"sales-insight/internal/model"
)

// YearTotal is the Sales and Profit booked in one calendar year.
type YearTotal struct {
	Year   int
	Sales  decimal.Decimal
	Profit decimal.Decimal
	Rows   int
}

// Profile summarises a table for dataset info screens.
type Profile struct {
	Rows    int
	Columns []model.Column

	// Dated rows only; zero when the table has no dates.
	FirstDate time.Time
	LastDate  time.Time
	Undated   int

	TotalSales  decimal.Decimal
	TotalProfit decimal.Decimal

	Years []YearTotal // ascending

	// Distinct non-empty values per categorical column.
	Distinct map[model.Column]int
}

// ComputeProfile walks the table once.
func ComputeProfile(t *model.Table) Profile {
	p := Profile{
		Rows:        t.Len(),
		Columns:     t.Columns(),
		TotalSales:  decimal.Zero,
		TotalProfit: decimal.Zero,
		Distinct:    map[model.Column]int{},
	}
	p.FirstDate, p.LastDate, _ = t.DateRange()

	categorical := []model.Column{model.ColRegion, model.ColState, model.ColCategory, model.ColProduct}
	seen := map[model.Column]map[string]bool{}
	for _, c := range categorical {
		if t.Has(c) {
			seen[c] = map[string]bool{}
		}
	}

	byYear := map[int]*YearTotal{}
	for _, r := range t.Rows() {
		sales, profit := valueOrZero(r.Sales), valueOrZero(r.Profit)
		p.TotalSales = p.TotalSales.Add(sales)
		p.TotalProfit = p.TotalProfit.Add(profit)

		for c, set := range seen {
			if v := r.Text(c); v != "" {
				set[v] = true
			}
		}

		if !r.HasDate() {
			if t.HasDates() {
				p.Undated++
			}
			continue
		}
		yt, ok := byYear[r.Year]
		if !ok {
			yt = &YearTotal{Year: r.Year, Sales: decimal.Zero, Profit: decimal.Zero}
			byYear[r.Year] = yt
		}
		yt.Sales = yt.Sales.Add(sales)
		yt.Profit = yt.Profit.Add(profit)
		yt.Rows++
	}

	for c, set := range seen {
		p.Distinct[c] = len(set)
	}
	for _, yt := range byYear {
		p.Years = append(p.Years, *yt)
	}
	sort.Slice(p.Years, func(i, j int) bool { return p.Years[i].Year < p.Years[j].Year })
	return p
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
