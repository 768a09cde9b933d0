// Package export writes analysis results as JSON and CSV artifacts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// Format selects the tabular output encoding.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Artifact file names written by WriteResult.
const (
	RelationshipsBase   = "relationships"
	RecommendationsBase = "recommendations"
	SummaryFile         = "summary.json"
)

// ExportError represents a failure writing an output artifact
type ExportError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s: %s", e.Path, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q (want json or csv)", s)
}

// Paths are the files written for one result.
type Paths struct {
	Relationships   string
	Recommendations string
	Summary         string
}

// WriteResult writes relationships and recommendations in format, and the
// stats summary as JSON, into dir.
func WriteResult(dir string, format Format, relationships []types.SkillRelationship, recommendations []types.Recommendation, stats types.Stats) (Paths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Paths{}, &ExportError{Path: dir, Message: "failed to create output directory", Cause: err}
	}

	paths := Paths{
		Relationships:   filepath.Join(dir, RelationshipsBase+"."+string(format)),
		Recommendations: filepath.Join(dir, RecommendationsBase+"."+string(format)),
		Summary:         filepath.Join(dir, SummaryFile),
	}

	var err error
	switch format {
	case FormatCSV:
		err = writeFile(paths.Relationships, func(w io.Writer) error {
			return WriteRelationshipsCSV(w, relationships)
		})
		if err == nil {
			err = writeFile(paths.Recommendations, func(w io.Writer) error {
				return WriteRecommendationsCSV(w, recommendations)
			})
		}
	default:
		err = WriteJSONFile(paths.Relationships, relationships)
		if err == nil {
			err = WriteJSONFile(paths.Recommendations, recommendations)
		}
	}
	if err != nil {
		return Paths{}, err
	}
	if err := WriteJSONFile(paths.Summary, stats); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

// WriteJSONFile writes v as indented JSON.
func WriteJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &ExportError{Path: path, Message: "failed to marshal JSON", Cause: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ExportError{Path: path, Message: "failed to write file", Cause: err}
	}
	return nil
}

// WriteRelationshipsCSV writes one flattened row per relationship.
func WriteRelationshipsCSV(w io.Writer, relationships []types.SkillRelationship) error {
	rows := make([]map[string]any, len(relationships))
	for i, r := range relationships {
		rows[i] = r.Flatten()
	}
	return writeCSV(w, types.RelationshipColumns, rows)
}

// WriteRecommendationsCSV writes one flattened row per recommendation.
func WriteRecommendationsCSV(w io.Writer, recommendations []types.Recommendation) error {
	rows := make([]map[string]any, len(recommendations))
	for i, r := range recommendations {
		rows[i] = r.Flatten()
	}
	return writeCSV(w, types.RecommendationColumns, rows)
}

// WriteMatrixCSV writes a labelled similarity matrix: a header row of ids
// followed by one row per id. NaN cells are left empty.
func WriteMatrixCSV(w io.Writer, ids []string, values [][]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ids); err != nil {
		return err
	}
	for _, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				cells[j] = strconv.FormatFloat(v, 'f', 6, 64)
			}
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixFile writes a labelled similarity matrix to path.
func WriteMatrixFile(path string, ids []string, values [][]float64) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMatrixCSV(w, ids, values)
	})
}

// WriteCandidatesCSV writes prefilter candidate pairs.
func WriteCandidatesCSV(w io.Writer, pairs []types.CandidatePair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"skill_a_id", "skill_b_id", "proxy_score"}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{p.AID, p.BID, strconv.FormatFloat(p.Proxy, 'f', 4, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCandidatesFile writes prefilter candidate pairs to path.
func WriteCandidatesFile(path string, pairs []types.CandidatePair) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteCandidatesCSV(w, pairs)
	})
}

func writeCSV(w io.Writer, columns []string, rows []map[string]any) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = formatCell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 4, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Message: "failed to create file", Cause: err}
	}
	if err := write(f); err != nil {
		f.Close()
		return &ExportError{Path: path, Message: "failed to write file", Cause: err}
	}
	if err := f.Close(); err != nil {
		return &ExportError{Path: path, Message: "failed to close file", Cause: err}
	}
	return nil
}
