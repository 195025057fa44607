package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/godilite/survey-stats/internal/service"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newReportCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every aggregate as tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := g.reports(cmd)
			if err != nil {
				return err
			}
			sum := reports.Summary()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			return writeReport(cmd.OutOrStdout(), sum)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the summary as JSON")
	return cmd
}

func f1(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func writeReport(w io.Writer, sum service.Summary) error {
	d := sum.Diagnostics
	if _, err := fmt.Fprintf(w, "Profile %s: %d participants, %d questions, %d of %d cells parsed (%d absent, %d unparseable)\n\n",
		sum.Profile, sum.Participants, len(sum.Questions), d.ParsedCells, d.TotalCells, d.AbsentCells, d.UnparseableCells); err != nil {
		return err
	}

	scales := tablewriter.NewWriter(w)
	scales.SetHeader([]string{"Scale", "Score", "Count", "% of cells", "% of answers"})
	for _, s := range sum.Scales {
		scales.Append([]string{s.Code, strconv.FormatFloat(s.Score, 'g', -1, 64), strconv.Itoa(s.Count), f1(s.PercentCells), f1(s.Share)})
	}
	scales.Render()

	cats := tablewriter.NewWriter(w)
	cats.SetHeader([]string{"Category", "Codes", "Count", "% of cells"})
	for _, c := range sum.Categories {
		cats.Append([]string{c.Bucket, strings.Join(c.Codes, ","), strconv.Itoa(c.Count), f1(c.Percent)})
	}
	cats.Render()

	means := tablewriter.NewWriter(w)
	means.SetHeader([]string{"Question", "Mean score"})
	for _, m := range sum.QuestionMeans {
		means.Append([]string{m.Question, f2(m.Mean)})
	}
	means.Render()

	_, err := fmt.Fprintf(w, "\nMost chosen:  %s (%d, %s%%)\nLeast chosen: %s (%d, %s%%)\nAverage score: %s\nBest question:  %s (%s)\nWorst question: %s (%s)\n",
		sum.MostFrequent.Code, sum.MostFrequent.Count, f1(sum.MostFrequent.Percent),
		sum.LeastFrequent.Code, sum.LeastFrequent.Count, f1(sum.LeastFrequent.Percent),
		f2(sum.AverageScore),
		sum.Best.Question, f2(sum.Best.Mean),
		sum.Worst.Question, f2(sum.Worst.Mean))
	return err
}
