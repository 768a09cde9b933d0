package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStringSet_NormalizesAndDedupes(t *testing.T) {
	s := NewStringSet(" Main Idea", "details", "main idea", "", "  ")
	assert.Equal(t, []string{"details", "main idea"}, s.Values())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("MAIN IDEA "))
	assert.False(t, s.Contains("theme"))
}

func TestStringSet_OrderIndependentEquality(t *testing.T) {
	a := NewStringSet("b", "a")
	b := NewStringSet("A", "B")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewStringSet("a")))
}

func TestStringSet_SetOperations(t *testing.T) {
	a := NewStringSet("a", "b", "c")
	b := NewStringSet("b", "c", "d")
	assert.Equal(t, []string{"b", "c"}, a.Intersect(b).Values())
	assert.Equal(t, []string{"a", "b", "c", "d"}, a.Union(b).Values())
	assert.True(t, a.Intersect(NewStringSet()).IsEmpty())
}

func TestStringSet_ValuesIsCopy(t *testing.T) {
	s := NewStringSet("a")
	v := s.Values()
	v[0] = "z"
	assert.Equal(t, []string{"a"}, s.Values())
}

func TestParseSet(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, ParseSet("a|b, c;d").Values())
	assert.True(t, ParseSet("").IsEmpty())
	assert.Equal(t, "a|b", ParseSet("b,a").String())
}

func TestStringSet_JSON(t *testing.T) {
	data, err := json.Marshal(StringSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var fromArray StringSet
	require.NoError(t, json.Unmarshal([]byte(`["B", "a"]`), &fromArray))
	assert.Equal(t, []string{"a", "b"}, fromArray.Values())

	var fromString StringSet
	require.NoError(t, json.Unmarshal([]byte(`"x|y"`), &fromString))
	assert.Equal(t, 2, fromString.Len())

	var bad StringSet
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &bad))
}

func TestNewSkillRecord_Normalizes(t *testing.T) {
	r := NewSkillRecord(RecordFields{
		ID:              "  R1 ",
		Name:            " Determine Main Idea ",
		ActionVerbs:     NewStringSet("Determine"),
		SupportLevel:    "With  Support",
		GradeLevel:      " Grade 3",
		CognitiveDemand: "UNDERSTAND",
	})

	assert.Equal(t, "R1", r.ID)
	assert.Equal(t, "Determine Main Idea", r.Name)
	assert.Equal(t, "with_support", r.SupportLevel)
	assert.Equal(t, "grade_3", r.GradeLevel)
	assert.Equal(t, "understand", r.CognitiveDemand)
	assert.True(t, r.TargetNouns.IsEmpty())
}

func TestSkillRecord_DisplayName(t *testing.T) {
	assert.Equal(t, "Name", NewSkillRecord(RecordFields{ID: "x", Name: "Name"}).DisplayName())
	assert.Equal(t, "x", NewSkillRecord(RecordFields{ID: "x"}).DisplayName())
}

func TestSkillRecord_SpecificationFields(t *testing.T) {
	r := NewSkillRecord(RecordFields{
		ID:           "x",
		SupportLevel: "independent",
		TextTypes:    NewStringSet("poetry", "drama"),
	})
	fields := r.SpecificationFields()

	assert.Len(t, fields, len(SpecificationFieldOrder))
	for _, name := range SpecificationFieldOrder {
		assert.Contains(t, fields, name)
	}
	assert.Equal(t, "drama|poetry", fields["text_type"])
	assert.Equal(t, "", fields["scope"])
}
