package query

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"sales-insight/internal/model"
)

// DefaultCurrencySymbol prefixes every amount unless a Formatter says otherwise.
const DefaultCurrencySymbol = "$"

// Formatter renders Params plus a Result into a one-sentence answer.
type Formatter struct {
	CurrencySymbol string
}

// FormatAnswer formats with the default currency symbol.
func FormatAnswer(params Params, res *Result) string {
	return Formatter{}.Format(params, res)
}

// Format produces one of:
//
//	<prefix>: no matching data.
//	<prefix> by <dimension> — <name>: <amount>; ...
//	<prefix> — <amount>.
//
// where prefix is the metric, optional " in <State>", " for <Category>" and
// " (<start> → <end>)".
func (f Formatter) Format(params Params, res *Result) string {
	prefix := Prefix(params)
	if res.Empty() {
		return prefix + ": no matching data."
	}
	if dim, ok := params.Dimension(); ok {
		parts := make([]string, 0, len(res.Rows))
		for _, row := range res.Rows {
			parts = append(parts, row.Key+": "+f.currency(row.Value))
		}
		return prefix + " by " + string(dim) + " — " + strings.Join(parts, "; ") + "."
	}
	return prefix + " — " + f.currency(res.Rows[0].Value) + "."
}

// Prefix is the leading part of an answer, before any amounts.
func Prefix(params Params) string {
	var b strings.Builder
	if params.Metric == model.MetricProfit {
		b.WriteString(string(model.MetricProfit))
	} else {
		b.WriteString(string(model.MetricSales))
	}
	if state, ok := params.Filters[model.ColState]; ok {
		b.WriteString(" in " + state)
	}
	if category, ok := params.Filters[model.ColCategory]; ok {
		b.WriteString(" for " + category)
	}
	if params.TimeWindow != nil {
		b.WriteString(" (" + params.TimeWindow.String() + ")")
	}
	return b.String()
}

func (f Formatter) currency(amount decimal.Decimal) string {
	symbol := f.CurrencySymbol
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return FormatCurrency(amount, symbol)
}

// FormatCurrency renders amount with two decimals and thousands separators,
// e.g. $12,345.67. Negative amounts keep the sign after the symbol ($-3.50).
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	return symbol + humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
}
