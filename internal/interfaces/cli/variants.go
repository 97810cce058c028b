package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newVariantsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List dataset variants",
		Args:  cobra.NoArgs,
		RunE: e.run(func(cmd *cobra.Command, _ []string) error {
			variants := e.catalog.List()
			if e.opts.jsonOut {
				type item struct {
					ID         string   `json:"id"`
					Name       string   `json:"name"`
					SourceFile string   `json:"source_file"`
					Metrics    []string `json:"metrics"`
				}
				out := make([]item, 0, len(variants))
				for _, v := range variants {
					out = append(out, item{ID: v.ID, Name: v.Name, SourceFile: v.SourceFile, Metrics: v.MetricKeys})
				}
				return e.printJSON(cmd.OutOrStdout(), out)
			}

			rows := make([][]string, 0, len(variants))
			for _, v := range variants {
				roles := make([]string, 0, len(v.Roles))
				for _, r := range v.Roles {
					roles = append(roles, r.ID)
				}
				rows = append(rows, []string{v.ID, v.Name, v.SourceFile, strconv.Itoa(len(v.MetricKeys)), strings.Join(roles, ",")})
			}
			_, err := cmd.OutOrStdout().Write([]byte(renderTable([]string{"ID", "NAME", "WORKBOOK", "METRICS", "ROLES"}, rows)))
			return err
		}),
	}
}
