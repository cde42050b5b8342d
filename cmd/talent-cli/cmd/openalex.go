package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/openalex"
)

var openalexCmd = &cobra.Command{
	Use:   "openalex",
	Short: "Query OpenAlex",
}

var statsOpts struct {
	years  int
	asJSON bool
}

var openalexStatsCmd = &cobra.Command{
	Use:   "stats [institution ids...]",
	Short: "Compute OpenAlex statistics for institutions",
	Long: `Counts works, articles per year and authors of the given institutions.
Without arguments the enabled members of the consortium file are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ids := args
		if len(ids) == 0 {
			consortium, err := config.LoadConsortium(cfg.GetConsortiumFile())
			if err != nil {
				return err
			}
			ids = consortium.IDs()
		}
		years := statsOpts.years
		if years <= 0 {
			years = cfg.GetOpenAlexYears()
		}

		stats, err := openalex.NewStatsService(openalex.NewClient(cfg), years).InstitutionStats(cmd.Context(), ids)
		if err != nil {
			return err
		}
		if statsOpts.asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func printStats(w io.Writer, stats *openalex.Stats) {
	fmt.Fprintf(w, "Institutions: %d\n", len(stats.InstitutionIDs))
	fmt.Fprintf(w, "Works:        %d\n", stats.Works)
	fmt.Fprintf(w, "Authors:      %d\n\n", stats.Authors)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "YEAR\tARTICLES\t")
	if len(stats.Years) > 0 {
		fmt.Fprintf(tw, "<%d\t%d\t\n", stats.Years[0].Year, stats.Before)
	}
	for _, y := range stats.Years {
		fmt.Fprintf(tw, "%d\t%d\t\n", y.Year, y.Count)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nQueried in %dms\n", stats.Timings.Total.Milliseconds())
}

func init() {
	f := openalexStatsCmd.Flags()
	f.IntVar(&statsOpts.years, "years", 0, "number of years shown (default $OPENALEX_YEARS)")
	f.BoolVar(&statsOpts.asJSON, "json", false, "print the statistics as JSON")
	openalexCmd.AddCommand(openalexStatsCmd)
	rootCmd.AddCommand(openalexCmd)
}
