package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t multiple    spaces  ")
	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3")
	assert.Equal(t, "Line 1\nLine 2\nLine 3", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText(" \n\t\n "))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "skill_id", normalizeHeader("\ufeffSkill ID"))
	assert.Equal(t, "action_verbs", normalizeHeader("  Action-Verbs "))
	assert.Equal(t, "grade_level", normalizeHeader("grade_level"))
}
