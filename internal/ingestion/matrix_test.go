package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMatrix_AlignedToRecords(t *testing.T) {
	input := "1.0,0.8,0.1\n0.8,1.0,\n0.1,,1.0\n"
	m, err := ReadMatrix(strings.NewReader(input), []string{"a", "b", "c"})
	require.NoError(t, err)

	v, ok := m.SemanticSimilarity("b", "a")
	assert.True(t, ok)
	assert.Equal(t, 0.8, v)

	_, ok = m.SemanticSimilarity("b", "c")
	assert.False(t, ok, "empty cells are unknown")
}

func TestReadMatrix_HeaderLabels(t *testing.T) {
	input := "x,y\n1,0.25\n0.25,1\n"
	m, err := ReadMatrix(strings.NewReader(input), nil)
	require.NoError(t, err)

	v, ok := m.SemanticSimilarity("x", "y")
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)
}

func TestReadMatrix_ShapeMismatch(t *testing.T) {
	_, err := ReadMatrix(strings.NewReader("1,0.5\n0.5,1\n"), []string{"a", "b", "c"})
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "does not match records")
}

func TestLoadMatrix_FileNotFound(t *testing.T) {
	_, err := LoadMatrix(filepath.Join(t.TempDir(), "none.csv"), nil)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "failed to open similarity matrix")
}

func TestLoadUsage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,count\na,10\nb,\na,5\n"), 0644))

	usage, err := LoadUsage(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 15}, usage)
}

func TestReadUsage_Errors(t *testing.T) {
	_, err := ReadUsage(strings.NewReader("skill_id,other\na,1\n"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))

	_, err = ReadUsage(strings.NewReader("skill_id,usage\na,many\n"))
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "invalid usage count")
}
