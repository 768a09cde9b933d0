// Package schemas holds the JSON Schemas for the analysis output artifacts.
package schemas

import "embed"

// Schema file names.
const (
	Relationships   = "relationships.schema.json"
	Recommendations = "recommendations.schema.json"
	Summary         = "summary.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// All lists the schema file names.
func All() []string {
	return []string{Relationships, Recommendations, Summary}
}
