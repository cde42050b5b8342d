package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/univ-lehavre/talent-finder-sub000/internal/app"
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/database"
	"github.com/univ-lehavre/talent-finder-sub000/internal/health"
	"github.com/univ-lehavre/talent-finder-sub000/internal/httpclient"
)

// ErrUnhealthy is returned when at least one check fails.
var ErrUnhealthy = errors.New("some health checks failed")

// openProbe connects to the database. Replaced in tests.
var openProbe = func(ctx context.Context, cfg *config.Config) (app.Probe, func(), error) {
	if err := cfg.RequireDB(); err != nil {
		return nil, nil, err
	}
	conn := database.NewConnection(cfg)
	if err := conn.Connect(ctx); err != nil {
		return nil, nil, err
	}
	return database.NewInspector(conn), func() { _ = conn.Close(context.Background()) }, nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run the dependency checks",
	Long:  `Runs the checks behind /health and exits with status 1 when one fails.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		probe, closeProbe, err := openProbe(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeProbe()

		checker := app.NewHealthChecker(probe, httpclient.New(), cfg.GetHealthPublicURL())
		report := checker.Run(cmd.Context(), nil)
		printReport(cmd.OutOrStdout(), report)
		if !report.OK() {
			return ErrUnhealthy
		}
		return nil
	},
}

func printReport(w io.Writer, report health.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tSTATUS\tLATENCY\tMESSAGE")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%dms\t%s\n", r.Name, r.Status, r.LatencyMs, r.Message)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nOverall: %s\n", report.Status)
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
