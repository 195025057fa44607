package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/godilite/survey-stats/internal/chart"
	"github.com/godilite/survey-stats/internal/config"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/spf13/cobra"
)

func newChartCmd(g *globals) *cobra.Command {
	var (
		kind   string
		subset string
		format string
		out    string
	)

	kinds := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render one dashboard panel to an image file",
		Long: fmt.Sprintf(`Render one dashboard panel to a PNG or SVG file.

Kinds: %s. A radar over fewer than three questions is drawn as the means bar chart.`, strings.Join(kinds, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := g.reports(cmd)
			if err != nil {
				return err
			}

			if out == "" {
				out = kind + "." + strings.ToLower(format)
			}
			rendered, err := reports.RenderChart(service.ChartRequest{
				Kind:      kind,
				Questions: questionIDs(subset),
				Format:    format,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, rendered.Image, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}

			note := ""
			if rendered.FellBack {
				note = " (radar needs three questions, drew means instead)"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s chart to %s%s\n", rendered.Kind, out, note)
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(chart.KindDistribution), "panel kind")
	cmd.Flags().StringVar(&subset, "subset", "", "comma separated questions to chart (default all loaded)")
	cmd.Flags().StringVar(&format, "format", "png", "png or svg")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <kind>.<format>)")
	return cmd
}

func questionIDs(list string) []string {
	ids := config.SplitList(list)
	for i, id := range ids {
		ids[i] = strings.ToUpper(id)
	}
	return ids
}
