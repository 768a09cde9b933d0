package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/similarity"
)

// LoadMatrix reads an n×n semantic similarity matrix from CSV and binds it
// to ids. If the first row is a header of record ids it labels the columns
// (and rows) instead of ids. Empty cells, "nan" and "NA" are unknown values.
func LoadMatrix(path string, ids []string) (*similarity.MatrixSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to open similarity matrix", Cause: err}
	}
	defer f.Close()

	m, err := ReadMatrix(f, ids)
	if err != nil {
		if loadErr, ok := err.(*LoadError); ok {
			loadErr.Path = path
		}
		return nil, err
	}
	return m, nil
}

// ReadMatrix is LoadMatrix over a reader.
func ReadMatrix(r io.Reader, ids []string) (*similarity.MatrixSource, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Message: "failed to read similarity matrix", Cause: err}
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		ids = make([]string, len(rows[0]))
		for i, h := range rows[0] {
			ids[i] = strings.TrimSpace(h)
		}
		rows = rows[1:]
	}

	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		matrix[i] = make([]float64, len(row))
		for j, cell := range row {
			v, err := parseCell(cell)
			if err != nil {
				return nil, &LoadError{Message: fmt.Sprintf("invalid value at row %d column %d", i+1, j+1), Cause: err}
			}
			matrix[i][j] = v
		}
	}

	source, err := similarity.NewMatrixSource(ids, matrix)
	if err != nil {
		return nil, &LoadError{Message: "similarity matrix does not match records", Cause: err}
	}
	return source, nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		if _, err := parseCell(cell); err != nil {
			return true
		}
	}
	return false
}

func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "nan", "na":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
