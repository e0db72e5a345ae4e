/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSV column names. Only "expression" is required.
const (
	ColumnName       = "name"
	ColumnExpression = "expression"
	ColumnWant       = "want"
	ColumnTolerance  = "tolerance"
	ColumnWantError  = "want_error"
)

// CSVOptions configures CSV loading
type CSVOptions struct {
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
}

// LoadCSV reads cases from CSV with a header row. Lines starting with '#'
// are skipped.
func LoadCSV(reader io.Reader, options CSVOptions) ([]Case, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comment = '#'
	csvReader.FieldsPerRecord = -1
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	index := make(map[string]int)
	for i, h := range records[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index[ColumnExpression]; !ok {
		return nil, fmt.Errorf("CSV header has no %q column", ColumnExpression)
	}

	cases := make([]Case, 0, len(records)-1)
	for n, record := range records[1:] {
		row := n + 1
		get := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		c := Case{
			Name:       get(ColumnName),
			Expression: get(ColumnExpression),
			WantError:  get(ColumnWantError),
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("row_%d", row)
		}
		if c.WantError == "" {
			if c.Want, err = parseFloatField(get(ColumnWant)); err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", row, ColumnWant, err)
			}
		}
		if s := get(ColumnTolerance); s != "" {
			if c.Tolerance, err = parseFloatField(s); err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", row, ColumnTolerance, err)
			}
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func parseFloatField(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(s, 64)
}
