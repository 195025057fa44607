package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/godilite/survey-stats/internal/survey"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in scoring profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			builtins := survey.BuiltinProfiles()
			names := make([]string, 0, len(builtins))
			for name := range builtins {
				names = append(names, name)
			}
			sort.Strings(names)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Profile", "Scores", "Positive", "Neutral", "Negative"})
			for _, name := range names {
				p := builtins[name]
				scores := make([]string, len(p.Levels))
				for i, l := range p.Levels {
					scores[i] = fmt.Sprintf("%s=%g", l.Code, l.Score)
				}
				table.Append([]string{
					name,
					strings.Join(scores, " "),
					joinCodes(p.Members(survey.Positive)),
					joinCodes(p.Members(survey.Neutral)),
					joinCodes(p.Members(survey.Negative)),
				})
			}
			table.Render()
			return nil
		},
	}
}

func joinCodes(codes []survey.Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
