/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile loads a suite file, choosing the format by extension:
// .csv, .textproto or .txtpb.
func LoadFile(path string) ([]Case, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		cases, err := LoadCSV(file, CSVOptions{})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cases, nil

	case ".textproto", ".txtpb":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read textproto file: %w", err)
		}
		cases, err := LoadTextproto(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cases, nil
	}
	return nil, fmt.Errorf("%s: unsupported suite format %q", path, ext)
}
