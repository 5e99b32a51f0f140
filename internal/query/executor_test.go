package query

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-insight/internal/model"
	"sales-insight/internal/model/modeltest"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertRows compares keys and values; decimal equality ignores exponent.
func assertRows(t *testing.T, want []ResultRow, got []ResultRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Key, got[i].Key, "row %d key", i)
		assert.True(t, want[i].Value.Equal(got[i].Value), "row %d: want %s, got %s", i, want[i].Value, got[i].Value)
	}
}

func TestExecute_Scalar(t *testing.T) {
	table := modeltest.Sales()
	p := testParser()

	res := Execute(table, p.Parse("total sales last month in California"))
	assert.True(t, res.Scalar())
	assertRows(t, []ResultRow{{Value: dec("250")}}, res.Rows)

	// No window: the undated row counts.
	res = Execute(table, p.Parse("total sales in California"))
	assertRows(t, []ResultRow{{Value: dec("1970")}}, res.Rows)
}

func TestExecute_GroupedDescending(t *testing.T) {
	res := Execute(modeltest.Sales(), testParser().Parse("profit by region this year"))
	assert.Equal(t, model.MetricProfit, res.Metric)
	assert.Equal(t, model.DimRegion, res.Dimension)
	assertRows(t, []ResultRow{
		{Key: "East", Value: dec("60")},
		{Key: "Central", Value: dec("40")},
		{Key: "West", Value: dec("27")},
	}, res.Rows)
}

func TestExecute_MonthsInCalendarOrder(t *testing.T) {
	res := Execute(modeltest.Sales(), testParser().Parse("monthly sales last year"))
	assertRows(t, []ResultRow{
		{Key: "Feb", Value: dec("80")},
		{Key: "Jun", Value: dec("250")},
		{Key: "Dec", Value: dec("150")},
	}, res.Rows)
}

func TestExecute_TopN(t *testing.T) {
	table := modeltest.Sales()
	p := testParser()

	res := Execute(table, p.Parse("top 2 categories by sales in 2017"))
	assert.Equal(t, model.DimCategory, res.Dimension)
	assertRows(t, []ResultRow{
		{Key: "Technology", Value: dec("1200")},
		{Key: "Furniture", Value: dec("300")},
	}, res.Rows)

	// N larger than the number of groups returns every group.
	res = Execute(table, p.Parse("top 10 products in 2017"))
	assertRows(t, []ResultRow{
		{Key: "Copiers", Value: dec("700")},
		{Key: "Phones", Value: dec("500")},
		{Key: "Tables", Value: dec("300")},
		{Key: "Paper", Value: dec("200")},
	}, res.Rows)

	// An N too large for int still means "every group".
	res = Execute(table, p.Parse("top 99999999999999999999 products in 2017"))
	assert.Equal(t, model.DimProduct, res.Dimension)
	assert.Len(t, res.Rows, 4)
}

func TestExecute_TopNOverridesGroupBy(t *testing.T) {
	params := Params{
		Metric:     model.MetricSales,
		TimeWindow: windowPtr(CalendarYear(2017)),
		GroupBy:    model.DimRegion,
		TopN:       &TopN{N: 1, Dimension: model.DimCategory},
	}
	res := Execute(modeltest.Sales(), params)
	assert.Equal(t, model.DimCategory, res.Dimension)
	assertRows(t, []ResultRow{{Key: "Technology", Value: dec("1200")}}, res.Rows)
}

func TestExecute_TiesKeepFirstSeenOrder(t *testing.T) {
	table := model.NewTable([]model.Row{
		modeltest.Row("2024-01-01", "West", "Utah", "B", "x", "10", "0"),
		modeltest.Row("2024-01-02", "West", "Utah", "A", "x", "10", "0"),
		modeltest.Row("2024-01-03", "West", "Utah", "C", "x", "5", "0"),
		modeltest.Row("2024-01-04", "West", "Utah", "C", "x", "5", "0"),
	})
	res := Execute(table, Params{Metric: model.MetricSales, GroupBy: model.DimCategory})
	assertRows(t, []ResultRow{
		{Key: "B", Value: dec("10")},
		{Key: "A", Value: dec("10")},
		{Key: "C", Value: dec("10")},
	}, res.Rows)
}

func TestExecute_NullAmountsAndEmptyKeys(t *testing.T) {
	table := model.NewTable([]model.Row{
		modeltest.Row("2024-01-01", "West", "Utah", "Furniture", "x", "", "1"),
		modeltest.Row("2024-01-02", "West", "Utah", "Furniture", "x", "7.25", "1"),
		modeltest.Row("2024-01-03", "West", "Utah", "", "x", "100", "1"),
	})
	res := Execute(table, Params{Metric: model.MetricSales, GroupBy: model.DimCategory})
	assertRows(t, []ResultRow{{Key: "Furniture", Value: dec("7.25")}}, res.Rows)

	res = Execute(table, Params{Metric: model.MetricSales})
	assertRows(t, []ResultRow{{Value: dec("107.25")}}, res.Rows)
}

func TestExecute_NoMatchingRows(t *testing.T) {
	p := testParser()
	for _, q := range []string{
		"sales in Mars",
		"profit by region in 1999",
		"top 3 products in Mars",
	} {
		t.Run(q, func(t *testing.T) {
			res := Execute(modeltest.Sales(), p.Parse(q))
			assert.True(t, res.Empty())
			assert.NotNil(t, res.Rows)
		})
	}
}

func TestExecute_FilterIgnoresCase(t *testing.T) {
	params := Params{Metric: model.MetricSales, Filters: Filters{model.ColState: "CALIFORNIA"}}
	res := Execute(modeltest.Sales(), params)
	assertRows(t, []ResultRow{{Value: dec("1970")}}, res.Rows)
}

func TestExecute_UndatedTableIgnoresWindow(t *testing.T) {
	table := modeltest.Undated()
	res := Execute(table, testParser().Parse("sales this year"))
	assertRows(t, []ResultRow{{Value: dec("4350")}}, res.Rows)

	res = Execute(table, Params{Metric: model.MetricSales, GroupBy: model.DimMonthName})
	assert.True(t, res.Empty())
}

func TestExecute_FilterOnMissingColumnIgnored(t *testing.T) {
	table := model.NewTable(modeltest.SalesRows(), model.ColState, model.ColSales, model.ColProfit)
	params := Params{Metric: model.MetricSales, Filters: Filters{model.ColCategory: "Nothing"}}
	res := Execute(table, params)
	assertRows(t, []ResultRow{{Value: dec("4350")}}, res.Rows)

	params = Params{Metric: model.MetricSales, GroupBy: model.DimRegion}
	assert.True(t, Execute(table, params).Empty())
}

func TestExecute_DoesNotModifyTable(t *testing.T) {
	table := modeltest.Sales()
	before := table.Rows()

	p := testParser()
	Execute(table, p.Parse("profit by region this year in California"))
	Execute(table, p.Parse("top 3 categories in 2017"))

	assert.Equal(t, before, table.Rows())
}

func windowPtr(w TimeWindow) *TimeWindow { return &w }
