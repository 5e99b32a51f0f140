// Package modeltest provides sales tables for tests.
package modeltest

import (
	"time"

	"github.com/shopspring/decimal"

	"sales-insight/internal/model"
)

// AnchorDate is the latest order date in Sales().
var AnchorDate = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

// Row builds a row; an empty date leaves it undated, an empty amount is null.
func Row(date, region, state, category, product, sales, profit string) model.Row {
	r := model.Row{
		Region:   region,
		State:    state,
		Category: category,
		Product:  product,
		Sales:    amount(sales),
		Profit:   amount(profit),
	}
	if date != "" {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		r.SetOrderDate(t)
	}
	return r
}

func amount(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// SalesRows is the canonical fixture. Totals worth knowing:
//
//	Feb 2024, California:        Sales 250
//	2024 YTD profit by region:   East 60, Central 40, West 27
//	2017 sales by category:      Technology 1200, Furniture 300, Office Supplies 200
//	2023 sales by month:         Feb 80, Jun 250, Dec 150
//	California, all rows:        Sales 1970 (one row undated)
func SalesRows() []model.Row {
	return []model.Row{
		Row("2024-03-15", "West", "California", "Technology", "Phones", "100", "20"),
		Row("2024-02-10", "West", "California", "Furniture", "Chairs", "200", "-10"),
		Row("2024-02-29", "West", "California", "Office Supplies", "Paper", "50", "5"),
		Row("2024-02-05", "East", "New York", "Technology", "Phones", "300", "60"),
		Row("2024-01-20", "Central", "Texas", "Furniture", "Tables", "400", "40"),
		Row("2023-12-31", "East", "New York", "Office Supplies", "Binders", "150", "30"),
		Row("2023-06-15", "Central", "Texas", "Technology", "Machines", "250", "-25"),
		Row("2023-02-01", "South", "Florida", "Furniture", "Chairs", "80", "8"),
		Row("2024-01-31", "West", "California", "Technology", "Accessories", "120", "12"),
		Row("", "West", "California", "Furniture", "Chairs", "1000", "100"),
		Row("2017-05-05", "West", "California", "Technology", "Phones", "500", "50"),
		Row("2017-11-11", "East", "New York", "Furniture", "Tables", "300", "30"),
		Row("2017-03-03", "Central", "Texas", "Office Supplies", "Paper", "200", "20"),
		Row("2017-08-08", "East", "New York", "Technology", "Copiers", "700", "70"),
	}
}

// Sales returns SalesRows as a table with every canonical column.
func Sales() *model.Table { return model.NewTable(SalesRows()) }

// Undated returns SalesRows without the date columns.
func Undated() *model.Table {
	rows := SalesRows()
	for i := range rows {
		rows[i].SetOrderDate(time.Time{})
	}
	return model.NewTable(rows,
		model.ColRegion, model.ColState, model.ColCategory, model.ColProduct,
		model.ColSales, model.ColProfit)
}
