package query

import (
	"encoding/csv"
	"io"
)

// WriteResultCSV writes res as a two-column CSV: the grouping dimension (or
// "total" for scalar results) and the metric.
func WriteResultCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)

	keyHeader := "total"
	if !res.Scalar() {
		keyHeader = string(res.Dimension)
	}
	if err := cw.Write([]string{keyHeader, string(res.Metric)}); err != nil {
		return err
	}

	for _, row := range res.Rows {
		key := row.Key
		if res.Scalar() {
			key = "total"
		}
		if err := cw.Write([]string{key, row.Value.StringFixed(2)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
