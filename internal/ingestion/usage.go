package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadUsage reads per-skill usage counts from a CSV with skill_id (or id)
// and usage (or count) columns. Blank counts are skipped.
func LoadUsage(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to open usage file", Cause: err}
	}
	defer f.Close()

	usage, err := ReadUsage(f)
	if err != nil {
		if loadErr, ok := err.(*LoadError); ok {
			loadErr.Path = path
		}
		return nil, err
	}
	return usage, nil
}

// ReadUsage is LoadUsage over a reader.
func ReadUsage(r io.Reader) (map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Message: "failed to read usage header", Cause: err}
	}
	idCol, countCol := -1, -1
	for i, h := range header {
		switch canonicalColumn(h) {
		case "skill_id":
			idCol = i
		case "usage", "count", "usage_count":
			countCol = i
		}
	}
	if idCol < 0 || countCol < 0 {
		return nil, &LoadError{Message: "usage file needs skill_id and usage columns"}
	}

	usage := make(map[string]int)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("failed to read usage row %d", line), Cause: err}
		}
		id := strings.TrimSpace(row[idCol])
		raw := strings.TrimSpace(row[countCol])
		if id == "" || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, &LoadError{Message: fmt.Sprintf("invalid usage count %q on row %d", raw, line), Cause: err}
		}
		usage[id] += n
	}
	return usage, nil
}
