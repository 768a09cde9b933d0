package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleSkills = `skill_id,skill_name,action_verbs,target_nouns,key_concepts,text_types,cognitive_demand,task_complexity,skill_domain,scope,support_level,grade_level,confidence
R1,Determine the main idea of a text,determine|identify,main idea|key details,central idea|summary,informational,understand,moderate,reading,paragraph,independent,3,high
R2,Determine the main idea of a text,determine|identify,main idea|key details,central idea|summary,informational,understand,moderate,reading,paragraph,independent,3,high
M1,Solve linear equations,solve,linear equations,variables,,apply,moderate,math,,,8,
`

const sampleMatrix = `1,0.95,0.1
0.95,1,0.1
0.1,0.1,1
`

// executeCommand runs the root command in-process with fresh flag values
// and returns everything written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// noExternalServices clears environment fallbacks that .env may have set.
func noExternalServices(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
}
