package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"

	"sales-insight/internal/analysis"
	"sales-insight/internal/config"
	"sales-insight/internal/engine"
	"sales-insight/internal/query"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "ask":
		cmdAsk(os.Args[2:])
	case "parse":
		cmdParse(os.Args[2:])
	case "info":
		cmdInfo(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println(`  cli ask   [--data file.csv] [--config config.yaml] [--table] [--out result.csv] "profit by region this year"`)
	fmt.Println(`  cli parse [--data file.csv] [--config config.yaml] "top 3 categories by sales in 2017"`)
	fmt.Println("  cli info  [--data file.csv] [--config config.yaml]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - relative phrases (last month, this year, ytd, last year) resolve against the latest order date")
	fmt.Println("  - --data overrides data.path from the config file")
}

// commonFlags registers the flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) (dataPath, cfgPath *string) {
	dataPath = fs.String("data", "", "Path to sales CSV or JSON (default: data.path from config)")
	cfgPath = fs.String("config", "", "Path to YAML config (optional)")
	return dataPath, cfgPath
}

func openEngine(dataPath, cfgPath string) *engine.Engine {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fail(err)
	}
	merged := config.Merge(*cfg, config.Config{Data: config.DataConfig{Path: dataPath}})
	eng, err := engine.Open(merged.Data.Path, merged.Data.LoadOptions(),
		engine.WithCurrencySymbol(merged.Format.CurrencySymbol))
	if err != nil {
		fail(err)
	}
	return eng
}

func cmdAsk(args []string) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	dataPath, cfgPath := commonFlags(fs)
	table := fs.Bool("table", false, "Also print the result table")
	outPath := fs.String("out", "", "Optional path to write the result table as CSV")
	_ = fs.Parse(args)

	question := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(question) == "" {
		fmt.Println("a question is required")
		os.Exit(2)
	}

	eng := openEngine(*dataPath, *cfgPath)
	fmt.Println("Thinking → Parsing your question...")
	answer := eng.Answer(question)
	fmt.Println(answer.Text)

	if *table && !answer.Result.Empty() {
		printResultTable(answer.Result, eng.CurrencySymbol())
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fail(err)
		}
		f, err := os.Create(*outPath)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		if err := query.WriteResultCSV(f, answer.Result); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(answer.Result.Rows), *outPath)
	}
}

func cmdParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	dataPath, cfgPath := commonFlags(fs)
	_ = fs.Parse(args)

	eng := openEngine(*dataPath, *cfgPath)
	params := eng.Parse(strings.Join(fs.Args(), " "))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(params); err != nil {
		fail(err)
	}
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dataPath, cfgPath := commonFlags(fs)
	_ = fs.Parse(args)

	eng := openEngine(*dataPath, *cfgPath)
	p := analysis.ComputeProfile(eng.Table())
	symbol := eng.CurrencySymbol()

	fmt.Printf("source:  %s\n", eng.Source())
	fmt.Printf("rows:    %d (%d undated)\n", p.Rows, p.Undated)
	fmt.Printf("anchor:  %s\n", eng.Anchor().Format(query.DateLayout))
	if !p.FirstDate.IsZero() {
		fmt.Printf("range:   %s → %s\n", p.FirstDate.Format(query.DateLayout), p.LastDate.Format(query.DateLayout))
	}
	fmt.Printf("sales:   %s\n", query.FormatCurrency(p.TotalSales, symbol))
	fmt.Printf("profit:  %s\n", query.FormatCurrency(p.TotalProfit, symbol))

	if len(p.Years) == 0 {
		return
	}
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Year", "Rows", "Sales", "Profit"})
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, y := range p.Years {
		tw.Append([]string{
			fmt.Sprint(y.Year),
			fmt.Sprint(y.Rows),
			query.FormatCurrency(y.Sales, symbol),
			query.FormatCurrency(y.Profit, symbol),
		})
	}
	tw.Render()
}

func printResultTable(res *query.Result, symbol string) {
	tw := tablewriter.NewWriter(os.Stdout)
	key := "Total"
	if !res.Scalar() {
		key = string(res.Dimension)
	}
	tw.SetHeader([]string{key, string(res.Metric)})
	tw.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, row := range res.Rows {
		name := row.Key
		if res.Scalar() {
			name = "all rows"
		}
		tw.Append([]string{name, query.FormatCurrency(row.Value, symbol)})
	}
	tw.Render()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
