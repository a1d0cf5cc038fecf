package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/cmd/markboard/commands"
	"github.com/Sumatoshi-tech/markboard/pkg/report"
)

const sampleDataset = `{
  "title": "5th Semester CSE",
  "students": [
    {"slNo": 1, "usn": "CS001", "name": "Asha Rao", "pome": 90, "dbms": 135, "aiml": 135, "toc": 90, "elective": {"name": "NLP", "score": 90}},
    {"slNo": 2, "usn": "CS002", "name": "Bharath K", "pome": 70, "dbms": 100, "aiml": null, "toc": 65, "elective": {"name": "Cloud Computing", "score": 75}},
    {"slNo": 3, "usn": "CS003", "name": "Chitra M", "pome": 35, "dbms": 50, "aiml": 55, "toc": 30, "elective": {"name": "Quantum Computing", "score": null}}
  ]
}`

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"serve", "render", "summary", "student", "validate", "mcp", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "dataset", "title", "verbose", "quiet"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "markboard ")
	assert.Contains(t, out, "commit:")
}

func TestSummaryCommand_JSON(t *testing.T) {
	t.Parallel()

	dataset := writeDataset(t, "students.json", sampleDataset)

	out, _, err := execute(t, "summary", "--dataset", dataset, "--format", "json", "--top", "2")
	require.NoError(t, err)

	var summary report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))

	assert.Equal(t, "5th Semester CSE", summary.Title)
	assert.Equal(t, 3, summary.Overview.TotalStudents)
	require.Len(t, summary.Leaderboard, 2)
	assert.Equal(t, "CS001", summary.Leaderboard[0].USN)
}

func TestSummaryCommand_Text(t *testing.T) {
	t.Parallel()

	dataset := writeDataset(t, "students.json", sampleDataset)

	out, _, err := execute(t, "summary", "-d", dataset, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha Rao")
}

func TestSummaryCommand_XLSX(t *testing.T) {
	t.Parallel()

	dataset := writeDataset(t, "students.json", sampleDataset)

	_, _, err := execute(t, "summary", "-d", dataset, "--format", "xlsx")
	require.ErrorIs(t, err, commands.ErrBinaryToTerminal)

	target := filepath.Join(t.TempDir(), "report.xlsx")

	_, stderr, err := execute(t, "summary", "-d", dataset, "--output", target)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote xlsx report")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSummaryCommand_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "summary", "--format", "pdf")
	require.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestStudentCommand(t *testing.T) {
	t.Parallel()

	dataset := writeDataset(t, "students.json", sampleDataset)

	out, _, err := execute(t, "student", "CS002", "-d", dataset, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Bharath K (CS002)")
	assert.Contains(t, out, "2nd of 3")

	out, _, err = execute(t, "student", "cs001", "-d", dataset, "--json")
	require.NoError(t, err)

	var profile map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.InDelta(t, 1, profile["rank"], 0)

	_, _, err = execute(t, "student", "CS404", "-d", dataset)
	require.ErrorIs(t, err, report.ErrStudentNotFound)
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	good := writeDataset(t, "good.json", sampleDataset)
	bad := writeDataset(t, "bad.json", `{"students": [{"slNo": 1, "usn": "CS001", "name": "Asha", "pome": 140, "elective": {"name": "NLP"}}]}`)

	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "3 students")

	out, _, err = execute(t, "validate", good, bad)
	require.ErrorIs(t, err, commands.ErrInvalidDataset)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "bad.json")
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestValidateCommand_Schema(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "validate", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "markboard cohort dataset")
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	dataset := writeDataset(t, "students.json", sampleDataset)
	outDir := filepath.Join(t.TempDir(), "site")

	out, _, err := execute(t, "render", "-d", dataset, "-o", outDir, "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered 7 pages for 3 students")

	for _, page := range []string{"index", "overview", "subjects", "students", "electives", "distribution", "correlation"} {
		_, statErr := os.Stat(filepath.Join(outDir, page+".html"))
		require.NoError(t, statErr, page)
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "overview.html")
}

func TestRenderCommand_MissingDataset(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "render", "-d", filepath.Join(t.TempDir(), "missing.json"), "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestServeCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	for _, flag := range []string{"host", "port", "preload"} {
		assert.NotNil(t, serve.Flags().Lookup(flag), flag)
	}
}

func TestServeCommand_InvalidPort(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "serve", "--port", "70000")
	require.Error(t, err)
}

func TestMCPCommand_DebugFlag(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRootCommand()
	mcpCmd, _, err := cmd.Find([]string{"mcp"})
	require.NoError(t, err)
	assert.NotEmpty(t, mcpCmd.Long)

	flag := mcpCmd.Flags().Lookup("debug")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
