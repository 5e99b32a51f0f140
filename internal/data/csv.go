package data

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decoding turns raw file bytes into UTF-8.
type decoding struct {
	name   string
	decode func([]byte) ([]byte, error)
}

// decodings are tried in order; the first one that yields a parsable CSV wins.
var decodings = []decoding{
	{name: "utf-8", decode: decodeUTF8},
	{name: "utf-8-sig", decode: decodeUTF8BOM},
	{name: "cp1252", decode: decodeCharmap(charmap.Windows1252)},
	{name: "latin1", decode: decodeCharmap(charmap.ISO8859_1)},
}

// ReadCSV loads a CSV file, trying each supported text encoding in turn.
// It returns the decoded table and the name of the encoding that worked.
func ReadCSV(path string) (*RawTable, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDataUnreadable, err)
	}
	return DecodeCSV(raw)
}

// DecodeCSV is ReadCSV for bytes already in memory.
func DecodeCSV(raw []byte) (*RawTable, string, error) {
	var errs []error
	for _, d := range decodings {
		text, err := d.decode(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			continue
		}
		table, err := parseCSV(bytes.NewReader(text))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			continue
		}
		if d.name != decodings[0].name {
			log.Printf("Loader: decoded CSV as %s", d.name)
		}
		return table, d.name, nil
	}
	return nil, "", fmt.Errorf("%w: %v", ErrDataUnreadable, errors.Join(errs...))
}

func parseCSV(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	// Short rows are allowed; Normalize treats missing cells as empty.
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return &RawTable{Header: header, Records: records}, nil
}

func decodeUTF8(b []byte) ([]byte, error) {
	if bytes.HasPrefix(b, utf8BOM) {
		return nil, errors.New("byte order mark present")
	}
	if !utf8.Valid(b) {
		return nil, errors.New("invalid utf-8")
	}
	return b, nil
}

func decodeUTF8BOM(b []byte) ([]byte, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if !utf8.Valid(b) {
		return nil, errors.New("invalid utf-8")
	}
	return b, nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) ([]byte, error) {
	return func(b []byte) ([]byte, error) {
		return cm.NewDecoder().Bytes(b)
	}
}
