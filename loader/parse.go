package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lamvuong/go-shop-catalog/models"
)

// ParseRecords reads delimited rows into raw records. The first row is the
// header; header cells are trimmed, lowercased and have internal whitespace
// runs replaced by a single underscore before becoming field keys. Field
// values are trimmed; empty values are dropped so downstream presence checks
// see them as missing. Fully-empty rows are skipped and counted.
func ParseRecords(r io.Reader, delimiter rune) ([]models.RawRecord, int, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, ErrMalformed{Err: fmt.Errorf("missing header row")}
	}
	if err != nil {
		return nil, 0, ErrMalformed{Err: fmt.Errorf("read header: %w", err)}
	}

	keys := make([]string, len(header))
	for i, cell := range header {
		keys[i] = NormalizeHeader(cell)
	}

	var records []models.RawRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, ErrMalformed{Err: fmt.Errorf("read row: %w", err)}
		}

		record := make(models.RawRecord, len(keys))
		for i, cell := range row {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			record[keys[i]] = value
		}
		if len(record) == 0 {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

// NormalizeHeader turns a raw header cell into a snake_case field key.
func NormalizeHeader(cell string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(cell))), "_")
}
