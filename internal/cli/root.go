// Package cli implements the survey command line tool.
package cli

import (
	"github.com/godilite/survey-stats/internal/app"
	"github.com/godilite/survey-stats/internal/config"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	Version = "dev"
	Commit  = "none"
)

// globals are the dataset flags shared by every command. Unset flags keep
// the values read from the environment.
type globals struct {
	cfg     *config.Config
	verbose bool
	logger  *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{cfg: config.LoadFromEnv()}
	var questions string

	root := &cobra.Command{
		Use:     "survey",
		Version: Version,
		Short:   "Descriptive statistics over Likert-scale survey responses",
		Long: `survey loads a response table (CSV, XLSX or SQLite) whose question columns
are named Q1..Q17 and reports scale counts, per-question rankings, mean scores
and the positive / neutral / negative rollup.

Examples:
  survey answer q1 --data responses.csv
  survey report --profile dashboard
  survey chart --kind radar --questions Q1,Q2,Q3 --out radar.png`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("questions") {
				g.cfg.Questions = config.SplitList(questions)
			}
			if !g.verbose {
				g.logger = zap.NewNop()
				return nil
			}
			logger, err := config.NewLogger(g.cfg)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.cfg.DataPath, "data", g.cfg.DataPath, "response file (.csv, .xlsx, .db)")
	flags.StringVar(&g.cfg.DataSheet, "sheet", g.cfg.DataSheet, "XLSX worksheet (default first sheet)")
	flags.StringVar(&g.cfg.DataTable, "table", g.cfg.DataTable, "SQLite table holding the responses")
	flags.StringVar(&g.cfg.Profile, "profile", g.cfg.Profile, "built-in scoring profile (answer, dashboard)")
	flags.StringVar(&g.cfg.ProfileFile, "profile-file", g.cfg.ProfileFile, "YAML profile, overrides --profile")
	flags.StringVar(&questions, "questions", "", "comma separated question columns (default: discover Q<n> columns)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newAnswerCmd(g),
		newReportCmd(g),
		newChartCmd(g),
		newServeCmd(g),
		newProfilesCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (g *globals) reports(cmd *cobra.Command) (*service.ReportService, error) {
	return app.LoadReports(cmd.Context(), g.cfg, g.logger)
}
