package repository

import (
	"fmt"
	"strings"
)

// columnMap maps column names to their indices; optional columns that are
// absent are not present in the map.
type columnMap map[string]int

// createHeaderMap resolves required and optional columns in header, ignoring
// case and surrounding whitespace.
func createHeaderMap(header []string, required, optional []string) (columnMap, error) {
	columns := make(columnMap)

	find := func(column string) (int, bool) {
		for i, field := range header {
			if strings.EqualFold(column, strings.TrimSpace(field)) {
				return i, true
			}
		}
		return -1, false
	}

	for _, column := range required {
		i, found := find(column)
		if !found {
			return nil, fmt.Errorf("required field '%s' not found in CSV header", column)
		}
		columns[column] = i
	}

	for _, column := range optional {
		if i, found := find(column); found {
			columns[column] = i
		}
	}

	return columns, nil
}

// maxIndex returns the highest column index a row must reach
func (c columnMap) maxIndex() int {
	maxIndex := -1
	for _, idx := range c {
		if idx > maxIndex {
			maxIndex = idx
		}
	}
	return maxIndex
}

// get returns the value of column in row, or "" for an absent column
func (c columnMap) get(row []string, column string) string {
	idx, ok := c[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
