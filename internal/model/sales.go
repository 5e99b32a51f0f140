package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Column is a canonical column name produced by the schema normalizer.
type Column string

const (
	ColOrderDate Column = "OrderDate"
	ColRegion    Column = "Region"
	ColState     Column = "State"
	ColCategory  Column = "Category"
	ColProduct   Column = "Product"
	ColSales     Column = "Sales"
	ColProfit    Column = "Profit"
	ColYear      Column = "Year"
	ColMonth     Column = "Month"
	ColMonthName Column = "MonthName"
)

// DateColumns are present together or not at all.
var DateColumns = []Column{ColOrderDate, ColYear, ColMonth, ColMonthName}

// Row is one sales transaction after normalization.
//
// Year, Month and MonthName are derived from OrderDate. They are zero whenever
// OrderDate is zero; use SetOrderDate to keep them consistent.
type Row struct {
	OrderDate time.Time `json:"order_date"`

	Region   string `json:"region"`
	State    string `json:"state"`
	Category string `json:"category"`
	Product  string `json:"product"`

	Sales  decimal.NullDecimal `json:"sales"`
	Profit decimal.NullDecimal `json:"profit"`

	Year      int        `json:"year,omitempty"`
	Month     time.Month `json:"month,omitempty"`
	MonthName string     `json:"month_name,omitempty"`
}

// SetOrderDate stores the calendar date of t (time of day dropped) and fills
// the derived fields. A zero t clears all of them.
func (r *Row) SetOrderDate(t time.Time) {
	if t.IsZero() {
		r.OrderDate = time.Time{}
		r.Year, r.Month, r.MonthName = 0, 0, ""
		return
	}
	y, m, d := t.Date()
	r.OrderDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	r.Year = y
	r.Month = m
	r.MonthName = MonthShortName(m)
}

// HasDate reports whether the row carries an order date.
func (r Row) HasDate() bool { return !r.OrderDate.IsZero() }

// Text returns the value of a categorical column as text.
// Unknown columns return "".
func (r Row) Text(c Column) string {
	switch c {
	case ColRegion:
		return r.Region
	case ColState:
		return r.State
	case ColCategory:
		return r.Category
	case ColProduct:
		return r.Product
	case ColMonthName:
		return r.MonthName
	}
	return ""
}

// Amount returns the value of a metric column.
func (r Row) Amount(m Metric) decimal.NullDecimal {
	switch m {
	case MetricProfit:
		return r.Profit
	case MetricSales:
		return r.Sales
	}
	return decimal.NullDecimal{}
}

// Table is an immutable set of rows plus the canonical columns the source
// actually provided.
type Table struct {
	rows    []Row
	columns map[Column]bool
}

// NewTable copies rows into a new table. Passing no columns marks every
// canonical column as present.
func NewTable(rows []Row, columns ...Column) *Table {
	if len(columns) == 0 {
		columns = []Column{ColRegion, ColState, ColCategory, ColProduct, ColSales, ColProfit}
		columns = append(columns, DateColumns...)
	}
	return NewTableWithColumns(rows, columns)
}

// NewTableWithColumns is NewTable with an exact column set, which may be
// empty.
func NewTableWithColumns(rows []Row, columns []Column) *Table {
	t := &Table{
		rows:    append([]Row(nil), rows...),
		columns: make(map[Column]bool, len(columns)),
	}
	for _, c := range columns {
		t.columns[c] = true
	}
	return t
}

func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the table's rows; callers may filter it freely.
func (t *Table) Rows() []Row { return append([]Row(nil), t.rows...) }

// Has reports whether the source provided column c.
func (t *Table) Has(c Column) bool { return t.columns[c] }

// HasDates reports whether the table carries order dates at all.
func (t *Table) HasDates() bool { return t.columns[ColOrderDate] }

// Columns lists the present columns in name order.
func (t *Table) Columns() []Column {
	out := make([]Column, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DateRange returns the earliest and latest order date. ok is false when no
// row has a date.
func (t *Table) DateRange() (first, last time.Time, ok bool) {
	for _, r := range t.rows {
		if !r.HasDate() {
			continue
		}
		if !ok || r.OrderDate.Before(first) {
			first = r.OrderDate
		}
		if !ok || r.OrderDate.After(last) {
			last = r.OrderDate
		}
		ok = true
	}
	return first, last, ok
}
