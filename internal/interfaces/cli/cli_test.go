package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("ROSTER_SOURCE", "memory")
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVariantsCommand(t *testing.T) {
	out, err := execute(t, "variants")
	require.NoError(t, err)
	require.Contains(t, out, "laterales")
	require.Contains(t, out, "volantes-mixtos")
	require.Contains(t, out, "right-back,left-back")
}

func TestRankCommand(t *testing.T) {
	out, err := execute(t, "rank", "laterales", "--role", "left-back", "--highlight", "Roman Vega (Argentinos Juniors)")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	require.True(t, strings.HasPrefix(lines[2], "1 "), "unexpected first row %q", lines[2])
	require.Contains(t, lines[2], "Marcos Acuña (River Plate)")
	require.Contains(t, lines[4], "*3")
	require.Equal(t, "3 of 3 players", lines[5])
}

func TestRankCommand_EmptyCohort(t *testing.T) {
	out, err := execute(t, "rank", "laterales", "--min-minutes", "9000", "--max-minutes", "9999")
	require.NoError(t, err)
	require.Contains(t, out, "no players match the filter")
}

func TestFilterFlags_KeepsCommasInsideKeys(t *testing.T) {
	var filters filterFlags
	cmd := &cobra.Command{Use: "rank"}
	filters.register(cmd)

	err := cmd.ParseFlags([]string{
		"--competition", "Korea, Republic of | K League 1 | 2025",
		"--competition", "Argentina | Liga Profesional | 2025",
	})
	require.NoError(t, err)

	in := filters.input(cmd)
	require.Equal(t, []string{
		"Korea, Republic of | K League 1 | 2025",
		"Argentina | Liga Profesional | 2025",
	}, in.CompetitionKeys)
	require.Nil(t, in.MinMinutes)
}

func TestRankCommand_HighlightWithComma(t *testing.T) {
	out, err := execute(t, "rank", "laterales", "--role", "left-back",
		"--highlight", "Vega, Roman (Argentinos Juniors)",
		"--highlight", "Roman Vega (Argentinos Juniors)")
	require.NoError(t, err)
	require.Contains(t, out, "*3")
	require.Contains(t, out, "3 of 3 players")
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "volantes-mixtos", "Alan Lescano (Argentinos Juniors)", "Thiago Almada (Botafogo)")
	require.NoError(t, err)
	require.Contains(t, out, "Alan Lescano (Argentinos Juniors) (1890 min)")
	require.Contains(t, out, "Juego asociado")
	require.Contains(t, out, "Thiago Almada (Botafogo) ranked #1")
}

func TestCompareCommand_JSON(t *testing.T) {
	out, err := execute(t, "--json", "compare", "volantes-mixtos", "Alan Lescano (Argentinos Juniors)")
	require.NoError(t, err)
	require.Contains(t, out, `"population": 6`)
	require.NotContains(t, out, `"secondary"`)
}

func TestCompareCommand_UnknownPlayer(t *testing.T) {
	_, err := execute(t, "compare", "laterales", "Nadie (Ninguno)")
	require.Error(t, err)
}

func TestImportCommand_DryRunReportsMissingWorkbooks(t *testing.T) {
	out, err := execute(t, "import", "--dry-run", "--data-dir", t.TempDir())
	require.ErrorContains(t, err, "2 of 2 variant imports failed")
	require.Contains(t, out, "failed")
}

func TestRenderTable_AlignsRunes(t *testing.T) {
	got := renderTable([]string{"A", "B"}, [][]string{{"Acuña", "1"}, {"Vega", "22"}})
	want := "A      B\n-----  --\nAcuña  1\nVega   22\n"
	require.Equal(t, want, got)
}

func TestImportCommand_SeedDryRun(t *testing.T) {
	out, err := execute(t, "import", "--seed", "--dry-run", "laterales")
	require.NoError(t, err)
	require.Contains(t, out, "dry_run")
	require.NotContains(t, out, "volantes-mixtos")
}
