package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sales-insight/internal/config"
)

type regionStates struct {
	region string
	states []string
}

var geography = []regionStates{
	{"West", []string{"California", "Washington", "Oregon", "Arizona", "Colorado"}},
	{"East", []string{"New York", "Pennsylvania", "Massachusetts", "New Jersey", "Ohio"}},
	{"Central", []string{"Texas", "Illinois", "Michigan", "Minnesota", "Indiana"}},
	{"South", []string{"Florida", "Georgia", "North Carolina", "Virginia", "Tennessee"}},
}

var catalog = map[string][]string{
	"Furniture":       {"Chairs", "Tables", "Bookcases", "Furnishings"},
	"Office Supplies": {"Binders", "Paper", "Storage", "Art", "Labels"},
	"Technology":      {"Phones", "Accessories", "Machines", "Copiers"},
}

var categories = []string{"Furniture", "Office Supplies", "Technology"}

func main() {
	outPath := flag.String("output", config.DefaultDataPath, "Output CSV path")
	rows := flag.Int("rows", 5000, "Number of order lines to generate")
	seed := flag.Int64("seed", 42, "Random seed (same seed, same file)")
	from := flag.String("from", "2014-01-03", "First order date (YYYY-MM-DD)")
	to := flag.String("to", "2017-12-30", "Last order date (YYYY-MM-DD)")
	flag.Parse()

	start, err := time.Parse("2006-01-02", *from)
	if err != nil {
		log.Fatalf("Invalid --from: %v", err)
	}
	end, err := time.Parse("2006-01-02", *to)
	if err != nil {
		log.Fatalf("Invalid --to: %v", err)
	}
	if end.Before(start) {
		log.Fatalf("--to must not be before --from")
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *outPath, err)
	}
	defer f.Close()

	if err := generate(f, *rows, rand.New(rand.NewSource(*seed)), start, end); err != nil {
		log.Fatalf("Failed to write sample: %v", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", *rows, *outPath)
}

func generate(f *os.File, n int, rng *rand.Rand, start, end time.Time) error {
	w := csv.NewWriter(f)
	header := []string{"Row ID", "Order Date", "Region", "State", "Category", "Sub-Category", "Sales", "Profit"}
	if err := w.Write(header); err != nil {
		return err
	}

	days := int(end.Sub(start).Hours()/24) + 1
	for i := 0; i < n; i++ {
		geo := geography[rng.Intn(len(geography))]
		state := geo.states[rng.Intn(len(geo.states))]
		category := categories[rng.Intn(len(categories))]
		subs := catalog[category]
		sub := subs[rng.Intn(len(subs))]

		date := start.AddDate(0, 0, rng.Intn(days))
		sales := 5 + rng.Float64()*995
		margin := -0.3 + rng.Float64()*0.7

		row := []string{
			strconv.Itoa(i + 1),
			date.Format("2006-01-02"),
			geo.region,
			state,
			category,
			sub,
			strconv.FormatFloat(sales, 'f', 2, 64),
			strconv.FormatFloat(sales*margin, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
