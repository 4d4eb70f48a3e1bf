package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/nakshatra-api/internal/database"
)

// execute runs the root command. Flag values survive between runs, so tests
// pass every flag they depend on.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestPrintDays(t *testing.T) {
	ends, next := 948, 15
	days := []database.AlmanacDay{
		{Date: "2000-01-01", ZodiacIndex: 6, MansionIndex: 14, Longitude: 192.0472, MansionEndsMinute: &ends, NextMansionIndex: &next},
		{Date: "2000-01-04", ZodiacIndex: 7, MansionIndex: 17, Longitude: 227.8894},
	}

	var out bytes.Buffer
	require.NoError(t, printDays(&out, days, "en"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "MANSION")
	assert.Contains(t, lines[1], "Libra")
	assert.Contains(t, lines[1], "Swati")
	assert.Contains(t, lines[1], "15:48 -> Vishakha")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "-"))
}

func TestPrintDays_UnknownLocale(t *testing.T) {
	err := printDays(&bytes.Buffer{}, []database.AlmanacDay{{Date: "2000-01-01"}}, "xx")
	assert.Error(t, err)
}

func TestShow_NoStore(t *testing.T) {
	out := execute(t, "show", "--start", "2000-01-01", "--end", "2000-01-03",
		"--offset", "+05:30", "--locale", "en", "--no-store")

	assert.Contains(t, out, "2000-01-01")
	assert.Contains(t, out, "2000-01-03")
	assert.Contains(t, out, "Swati")
}

func TestBuildThenShow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "almanac.db")

	out := execute(t, "build", "--db", dbPath, "--start", "2000-01-01", "--end", "2000-01-05",
		"--offset", "+05:30")
	assert.Contains(t, out, "stored 5 days at +05:30")

	out = execute(t, "show", "--db", dbPath, "--start", "2000-01-02", "--end", "2000-01-02",
		"--offset", "+05:30", "--locale", "ta", "--no-store=false")
	assert.Contains(t, out, "2000-01-02")
	assert.NotContains(t, out, "2000-01-03")
}

func TestChart(t *testing.T) {
	out := execute(t, "chart", "2000-01-01T12:00", "--offset", "Z", "--locale", "en", "--name", "Tina")

	assert.Contains(t, out, "sign 6, mansion 15")
	assert.Contains(t, out, "Libra / Vishakha")
	assert.Contains(t, out, `"Tina" matches`)
}

func TestExportImportStats(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")

	exported := execute(t, "export", "--db", src, "--start", "2000-01-01", "--end", "2000-01-03",
		"--offset", "+05:30")

	var days []database.AlmanacDay
	require.NoError(t, json.Unmarshal([]byte(exported), &days))
	require.Len(t, days, 3)
	assert.Equal(t, 14, days[0].MansionIndex)

	file := filepath.Join(dir, "jan.json")
	require.NoError(t, os.WriteFile(file, []byte(exported), 0o644))

	out := execute(t, "import", file, "--db", dst)
	assert.Contains(t, out, "imported 3 days")

	out = execute(t, "stats", "--db", dst)
	assert.Regexp(t, `\+05:30\s+3\s+2000-01-01\s+2000-01-03`, out)
}

func TestImport_RejectsInvalidRows(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"date":"2000-01-01","mansion_index":27}]`), 0o644))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"import", file, "--db", filepath.Join(dir, "a.db"), "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
