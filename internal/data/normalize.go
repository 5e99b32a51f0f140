package data

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sales-insight/internal/model"
)

// DateOrder decides how ambiguous numeric dates such as 03/04/2017 are read.
type DateOrder string

const (
	// DayFirst tries day/month/year before month/day/year.
	DayFirst DateOrder = "dmy"
	// MonthFirst tries month/day/year before day/month/year.
	MonthFirst DateOrder = "mdy"
)

// headerAliases maps source headers onto canonical column names.
var headerAliases = map[string]model.Column{
	"Order Date":   model.ColOrderDate,
	"OrderDate":    model.ColOrderDate,
	"Region":       model.ColRegion,
	"State":        model.ColState,
	"Category":     model.ColCategory,
	"Sales":        model.ColSales,
	"Profit":       model.ColProfit,
	"Product Name": model.ColProduct,
	"Product":      model.ColProduct,
}

// subCategoryHeader supplies Product when no product column exists.
const subCategoryHeader = "Sub-Category"

var (
	isoLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
	}
	dayFirstLayouts = []string{
		"2/1/2006", "2-1-2006", "2.1.2006", "2/1/06", "2-1-06",
		"2/1/2006 15:04", "2/1/2006 15:04:05",
		"2 Jan 2006", "2 January 2006",
	}
	monthFirstLayouts = []string{
		"1/2/2006", "1-2-2006", "1/2/06", "1-2-06",
		"1/2/2006 15:04", "1/2/2006 15:04:05",
		"Jan 2, 2006", "January 2, 2006", "Jan 2 2006",
	}
)

// Normalize maps a raw source onto the canonical sales schema: canonical
// headers, decimal Sales/Profit (invalid cells become null), parsed order
// dates and the derived year/month fields.
func Normalize(raw *RawTable, opts LoadOptions) *model.Table {
	index := map[model.Column]int{}
	subCategory := -1
	for i, h := range raw.Header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if col, ok := headerAliases[h]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
			continue
		}
		if h == subCategoryHeader {
			subCategory = i
		}
	}
	if _, ok := index[model.ColProduct]; !ok && subCategory >= 0 {
		index[model.ColProduct] = subCategory
	}

	columns := make([]model.Column, 0, len(index)+3)
	for col := range index {
		columns = append(columns, col)
	}
	_, hasDate := index[model.ColOrderDate]
	if hasDate {
		columns = append(columns, model.ColYear, model.ColMonth, model.ColMonthName)
	}

	layouts := dateLayouts(opts.DateOrder)
	cell := func(rec []string, col model.Column) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]model.Row, 0, len(raw.Records))
	badDates := 0
	for _, rec := range raw.Records {
		r := model.Row{
			Region:   cell(rec, model.ColRegion),
			State:    cell(rec, model.ColState),
			Category: cell(rec, model.ColCategory),
			Product:  cell(rec, model.ColProduct),
			Sales:    parseAmount(cell(rec, model.ColSales)),
			Profit:   parseAmount(cell(rec, model.ColProfit)),
		}
		if hasDate {
			if t, ok := parseDate(cell(rec, model.ColOrderDate), layouts); ok {
				r.SetOrderDate(t)
			} else {
				badDates++
			}
		}
		rows = append(rows, r)
	}
	if badDates > 0 {
		log.Printf("Loader: %d of %d rows have no usable order date", badDates, len(rows))
	}
	return model.NewTableWithColumns(rows, columns)
}

func parseAmount(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func dateLayouts(order DateOrder) []string {
	out := append([]string(nil), isoLayouts...)
	if order == MonthFirst {
		out = append(out, monthFirstLayouts...)
		return append(out, dayFirstLayouts...)
	}
	out = append(out, dayFirstLayouts...)
	return append(out, monthFirstLayouts...)
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateOrder validates a configured date order; empty means DayFirst.
func ParseDateOrder(s string) (DateOrder, error) {
	switch DateOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", DayFirst:
		return DayFirst, nil
	case MonthFirst:
		return MonthFirst, nil
	}
	return "", fmt.Errorf("unknown date order %q (want %q or %q)", s, DayFirst, MonthFirst)
}
