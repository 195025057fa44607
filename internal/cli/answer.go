package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAnswerCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "answer [query]",
		Short: "Print the one-line answer to a canned query (q1..q13)",
		Long: `Print the one-line answer to a canned query. The query is taken from the
argument or, when absent, from the first line of standard input. Unknown
queries print an empty line.

  q1  most chosen scale          q8   questions most often at scale 6
  q2  least chosen scale         q9   questions where anyone chose the lowest scale
  q3..q7  questions most often   q10  average score
          at scale 1..5          q11/q12  best / worst question
                                 q13  positive / neutral / negative counts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args)
			if err != nil {
				return err
			}
			reports, err := g.reports(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reports.Answer(query))
			return err
		},
	}
}

func readQuery(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	sc := bufio.NewScanner(cmd.InOrStdin())
	if sc.Scan() {
		return strings.TrimSpace(sc.Text()), nil
	}
	return "", sc.Err()
}
