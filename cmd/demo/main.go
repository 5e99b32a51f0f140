package main

import (
	"flag"
	"fmt"

	"sales-insight/internal/config"
	"sales-insight/internal/engine"
	"sales-insight/internal/query"
)

// Demo:
// - Load a Superstore-shaped CSV (see cmd/gen-sample for a synthetic one)
// - Ask the canonical questions and show the parsed query next to each answer
func main() {
	dataPath := flag.String("data", "", "Path to sales CSV or JSON (default: data.path from config)")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	merged := config.Merge(*cfg, config.Config{Data: config.DataConfig{Path: *dataPath}})
	eng, err := engine.Open(merged.Data.Path, merged.Data.LoadOptions(),
		engine.WithCurrencySymbol(merged.Format.CurrencySymbol))
	if err != nil {
		panic(err)
	}

	questions := []string{
		"total sales last month in California",
		"profit by region this year",
		"top 3 categories by sales in 2017",
		"monthly profit last year",
		"sales in Mars",
	}

	fmt.Printf("Loaded %d rows, anchor date %s\n\n", eng.Table().Len(), eng.Anchor().Format(query.DateLayout))
	for _, q := range questions {
		a := eng.Answer(q)
		dim, _ := a.Params.Dimension()
		fmt.Printf("Q: %s\n", q)
		fmt.Printf("   metric=%s dimension=%s filters=%v window=%v\n", a.Params.Metric, dim, a.Params.Filters, a.Params.TimeWindow)
		fmt.Printf("A: %s\n\n", a.Text)
	}
}
