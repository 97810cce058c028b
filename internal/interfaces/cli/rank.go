package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

func newRankCommand(e *env) *cobra.Command {
	var (
		filters   filterFlags
		limit     int
		highlight []string
	)
	cmd := &cobra.Command{
		Use:   "rank <variant>",
		Short: "Rank the filtered cohort of a variant by overall score",
		Args:  cobra.ExactArgs(1),
		RunE: e.run(func(cmd *cobra.Command, args []string) error {
			svc, err := e.scouting(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Search(cmd.Context(), usecase.SearchInput{
				VariantID: args[0],
				Filter:    filters.input(cmd),
				Highlight: highlight,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			if e.opts.jsonOut {
				return e.printJSON(cmd.OutOrStdout(), rankingJSON(res))
			}

			out := cmd.OutOrStdout()
			if res.Empty {
				_, err := fmt.Fprintln(out, "no players match the filter")
				return err
			}
			rows := make([][]string, 0, len(res.Rows))
			for _, row := range res.Rows {
				mark := ""
				if row.Selected {
					mark = "*"
				}
				rows = append(rows, []string{
					mark + strconv.Itoa(row.Rank),
					row.Label,
					row.Record.Position,
					string(row.Record.Foot),
					strconv.Itoa(row.Record.MinutesPlayed),
					row.Record.CompositeKey(),
					strconv.FormatFloat(row.Record.OverallScore, 'f', 2, 64),
				})
			}
			if _, err := out.Write([]byte(renderTable([]string{"RANK", "PLAYER", "POS", "FOOT", "MIN", "COMPETITION", "SCORE"}, rows))); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d of %d players\n", len(res.Rows), res.Total)
			return err
		}),
	}
	filters.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows, 0 for all")
	cmd.Flags().StringArrayVar(&highlight, "highlight", nil, "Player label 'Name (Team)' to mark, repeatable")
	return cmd
}

type rankingRowJSON struct {
	Rank     int     `json:"rank"`
	Label    string  `json:"label"`
	Minutes  int     `json:"minutes"`
	Score    float64 `json:"overall_score"`
	Selected bool    `json:"selected"`
}

func rankingJSON(res usecase.SearchResult) any {
	rows := make([]rankingRowJSON, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, rankingRowJSON{
			Rank:     row.Rank,
			Label:    row.Label,
			Minutes:  row.Record.MinutesPlayed,
			Score:    row.Record.OverallScore,
			Selected: row.Selected,
		})
	}
	return map[string]any{
		"variant_id": res.Variant.ID,
		"total":      res.Total,
		"rows":       rows,
	}
}
