package data

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// ReadJSON loads a JSON array of flat objects. The header is the sorted union
// of all keys; missing keys become empty cells.
func ReadJSON(path string) (*RawTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnreadable, err)
	}
	return DecodeJSON(raw)
}

// DecodeJSON is ReadJSON for bytes already in memory.
func DecodeJSON(raw []byte) (*RawTable, error) {
	var objects []map[string]any
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnreadable, err)
	}

	keys := map[string]bool{}
	for _, o := range objects {
		for k := range o {
			keys[k] = true
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	records := make([][]string, 0, len(objects))
	for _, o := range objects {
		rec := make([]string, len(header))
		for i, k := range header {
			rec[i] = jsonCell(o[k])
		}
		records = append(records, rec)
	}
	return &RawTable{Header: header, Records: records}, nil
}

func jsonCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
