package cli

import (
	"fmt"

	"github.com/godilite/survey-stats/internal/app"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over gRPC until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.NewApp(cmd.Context(), g.cfg, g.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "serving survey.v1.SurveyReports on %s\n", application.Addr())
			return application.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&g.cfg.GRPCPort, "port", g.cfg.GRPCPort, "gRPC port")
	cmd.Flags().StringVar(&g.cfg.RedisAddr, "redis", g.cfg.RedisAddr, "Redis address for response caching")
	cmd.Flags().StringVar(&g.cfg.MetricsAddr, "metrics", g.cfg.MetricsAddr, "address for the Prometheus /metrics endpoint")
	return cmd
}
