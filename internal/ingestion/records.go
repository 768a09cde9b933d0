package ingestion

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/config"
	"github.com/collinhord/rock-ai-hackathon-2025-sub000/internal/types"
)

// columnAliases maps accepted alternative headers to their canonical column.
var columnAliases = map[string]string{
	"id":        "skill_id",
	"name":      "skill_name",
	"text_type": "text_types",
}

// requiredColumns must be present (directly or by alias) in every input.
var requiredColumns = []string{"skill_id", "skill_name"}

// LoadRecords reads skill records from a .csv or .json file.
func LoadRecords(path string) ([]types.SkillRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to open file", Cause: err}
	}
	defer f.Close()

	var records []types.SkillRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = ReadCSV(f)
	case ".json":
		records, err = ReadJSON(f)
	default:
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("unsupported file extension %q (want .csv or .json)", filepath.Ext(path))}
	}
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Path == "" {
			loadErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

// ReadCSV reads skill records from CSV with a header row. Set-valued columns
// are pipe, comma or semicolon delimited. A missing required column is a
// *config.ConfigError; malformed CSV is a *LoadError.
func ReadCSV(r io.Reader) ([]types.SkillRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &config.ConfigError{Field: "skill_id", Message: "input has no header row"}
	}
	if err != nil {
		return nil, &LoadError{Message: "failed to read CSV header", Cause: err}
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := canonicalColumn(h)
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	if err := checkRequired(columns); err != nil {
		return nil, err
	}

	var records []types.SkillRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("failed to read CSV row %d", len(records)+2), Cause: err}
		}
		get := func(col string) string {
			if i, ok := columns[col]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		records = append(records, types.NewSkillRecord(fieldsFrom(get)))
	}
	return records, nil
}

// ReadJSON reads skill records from a JSON array of objects, or from an
// object holding that array under "skills". Object keys follow the CSV
// column names; set-valued fields may be arrays or delimited strings.
func ReadJSON(r io.Reader) ([]types.SkillRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: "failed to read JSON", Cause: err}
	}

	var objects []map[string]json.RawMessage
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Skills []map[string]json.RawMessage `json:"skills"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
		}
		objects = wrapper.Skills
	} else if err := json.Unmarshal(trimmed, &objects); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}

	records := make([]types.SkillRecord, 0, len(objects))
	for i, obj := range objects {
		values := make(map[string]json.RawMessage, len(obj))
		for k, v := range obj {
			key := canonicalColumn(k)
			if _, dup := values[key]; !dup {
				values[key] = v
			}
		}
		if err := checkRequired(values); err != nil {
			var cfgErr *config.ConfigError
			if errors.As(err, &cfgErr) {
				cfgErr.Message = fmt.Sprintf("record %d: %s", i, cfgErr.Message)
			}
			return nil, err
		}

		var decodeErr error
		get := func(col string) string {
			raw, ok := values[col]
			if !ok {
				return ""
			}
			s, err := jsonText(raw)
			if err != nil && decodeErr == nil {
				decodeErr = fmt.Errorf("field %s: %w", col, err)
			}
			return s
		}
		fields := fieldsFrom(get)
		if decodeErr != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid record %d", i), Cause: decodeErr}
		}
		records = append(records, types.NewSkillRecord(fields))
	}
	return records, nil
}

// fieldsFrom builds RecordFields from a column lookup.
func fieldsFrom(get func(col string) string) types.RecordFields {
	return types.RecordFields{
		ID:              get("skill_id"),
		Name:            CleanText(get("skill_name")),
		Description:     CleanText(get("description")),
		ActionVerbs:     types.ParseSet(get("action_verbs")),
		TargetNouns:     types.ParseSet(get("target_nouns")),
		KeyConcepts:     types.ParseSet(get("key_concepts")),
		TextTypes:       types.ParseSet(get("text_types")),
		CognitiveDemand: get("cognitive_demand"),
		TaskComplexity:  get("task_complexity"),
		SkillDomain:     get("skill_domain"),
		Scope:           get("scope"),
		SupportLevel:    get("support_level"),
		TextMode:        get("text_mode"),
		ComplexityBand:  get("complexity_band"),
		GradeLevel:      get("grade_level"),
		ConfidenceLabel: get("confidence"),
	}
}

// jsonText renders a JSON value as the delimited text the CSV path would
// see: strings as-is, arrays pipe-joined, numbers verbatim, null as empty.
func jsonText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", err
		}
		return strings.Join(items, "|"), nil
	case '{':
		return "", fmt.Errorf("objects are not supported")
	}
	return string(trimmed), nil
}

func canonicalColumn(h string) string {
	key := normalizeHeader(h)
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}

func checkRequired[V any](columns map[string]V) error {
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return &config.ConfigError{
				Field:   col,
				Message: "missing required column",
			}
		}
	}
	return nil
}
