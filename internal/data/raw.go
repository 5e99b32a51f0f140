package data

import (
	"errors"
	"path/filepath"
	"strings"

	"sales-insight/internal/model"
)

// ErrDataUnreadable is returned when a source cannot be decoded by any of the
// supported strategies.
var ErrDataUnreadable = errors.New("could not read data file with any supported encoding")

// RawTable is a decoded but not yet normalized source: a header plus string
// records of the same width.
type RawTable struct {
	Header  []string
	Records [][]string
}

// LoadOptions controls how a source is normalized.
type LoadOptions struct {
	DateOrder DateOrder
}

// LoadTable reads path (JSON when the extension is .json, CSV otherwise) and
// returns the normalized table.
func LoadTable(path string, opts LoadOptions) (*model.Table, error) {
	var (
		raw *RawTable
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err = ReadJSON(path)
	} else {
		raw, _, err = ReadCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return Normalize(raw, opts), nil
}
