package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

func newCompareCommand(e *env) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "compare <variant> <player> [other-player]",
		Short: "Compare metric profiles inside the filtered cohort",
		Long: `compare resolves players by their "Name (Team)" label, ignoring accents,
and prints raw values with their position in the cohort's min-max range.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			svc, err := e.scouting(cmd.Context())
			if err != nil {
				return err
			}
			input := usecase.CompareInput{
				VariantID: args[0],
				Filter:    filters.input(cmd),
				Primary:   args[1],
			}
			if len(args) == 3 {
				input.Secondary = &args[2]
			}
			res, err := svc.Compare(cmd.Context(), input)
			if err != nil {
				return err
			}
			if e.opts.jsonOut {
				return e.printJSON(cmd.OutOrStdout(), compareJSON(res))
			}
			return writeComparison(cmd, res)
		}),
	}
	filters.register(cmd)
	return cmd
}

func writeComparison(cmd *cobra.Command, res usecase.CompareResult) error {
	out := cmd.OutOrStdout()
	headers := []string{"METRIC", "COHORT MIN", "COHORT MAX", res.Primary.Caption}
	if res.Secondary != nil {
		headers = append(headers, res.Secondary.Caption)
	}

	rows := make([][]string, 0, len(res.Variant.MetricKeys))
	for i, metric := range res.Variant.MetricKeys {
		r := res.Ranges[i]
		row := []string{metric, formatValue(r.Min), formatValue(r.Max), profileCell(res.Primary, i)}
		if res.Secondary != nil {
			row = append(row, profileCell(*res.Secondary, i))
		}
		rows = append(rows, row)
	}
	if _, err := out.Write([]byte(renderTable(headers, rows))); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "cohort: %d players, %s ranked #%d", res.Population, res.Primary.Label, res.Primary.Rank)
	if err == nil && res.Secondary != nil {
		_, err = fmt.Fprintf(out, ", %s ranked #%d", res.Secondary.Label, res.Secondary.Rank)
	}
	if err == nil {
		_, err = fmt.Fprintln(out)
	}
	return err
}

// profileCell shows the raw value and its 0-100 position in the cohort.
func profileCell(p usecase.ProfiledPlayer, i int) string {
	return formatValue(p.Values[i]) + " (" + strconv.Itoa(int(p.Scaled[i]*100+0.5)) + ")"
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type metricJSON struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Scaled float64 `json:"scaled"`
}

type profileJSON struct {
	Label   string       `json:"label"`
	Caption string       `json:"caption"`
	Rank    int          `json:"rank"`
	Metrics []metricJSON `json:"metrics"`
}

func toProfileJSON(p usecase.ProfiledPlayer, metrics []string) profileJSON {
	out := profileJSON{Label: p.Label, Caption: p.Caption, Rank: p.Rank}
	for i, m := range metrics {
		out.Metrics = append(out.Metrics, metricJSON{Metric: m, Value: p.Values[i], Scaled: p.Scaled[i]})
	}
	return out
}

func compareJSON(res usecase.CompareResult) any {
	out := map[string]any{
		"variant_id": res.Variant.ID,
		"population": res.Population,
		"primary":    toProfileJSON(res.Primary, res.Variant.MetricKeys),
	}
	if res.Secondary != nil {
		out["secondary"] = toProfileJSON(*res.Secondary, res.Variant.MetricKeys)
	}
	return out
}
