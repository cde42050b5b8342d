package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
)

// Replaced in tests.
var (
	gitRunner  gitstats.Runner = gitstats.ExecRunner{}
	fileSystem afero.Fs        = afero.NewOsFs()
)

var gitstatsOpts struct {
	dir    string
	out    string
	since  string
	recent int
}

var gitstatsCmd = &cobra.Command{
	Use:   "gitstats",
	Short: "Build the repository statistics snapshot",
	Long: `Reads the git history and the source tree of a repository and writes the
snapshot served by the repository page. The web server reloads the file as
soon as it changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		dir := gitstatsOpts.dir
		if dir == "" {
			dir = cfg.GetGitRepoDir()
		}
		out := gitstatsOpts.out
		if out == "" {
			out = cfg.GetGitStatsFile()
		}

		snap, err := gitstats.Build(cmd.Context(), gitRunner, fileSystem, gitstats.BuildOptions{
			Dir:    dir,
			Since:  gitstatsOpts.since,
			Recent: gitstatsOpts.recent,
		})
		if err != nil {
			return err
		}
		if err := gitstats.Save(fileSystem, out, snap); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printSnapshot(cmd.OutOrStdout(), snap, out)
		return nil
	},
}

func printSnapshot(w io.Writer, snap *gitstats.Snapshot, path string) {
	fmt.Fprintf(w, "Wrote %s\n", path)
	fmt.Fprintf(w, "  commits  %d\n", snap.Totals.Commits)
	fmt.Fprintf(w, "  authors  %d\n", snap.Totals.Authors)
	fmt.Fprintf(w, "  lines    +%d -%d\n", snap.Totals.Added, snap.Totals.Deleted)
	if snap.Sources != nil {
		fmt.Fprintf(w, "  files    %d (%d lines)\n", snap.Sources.Files, snap.Sources.Lines)
	}
}

func init() {
	f := gitstatsCmd.Flags()
	f.StringVar(&gitstatsOpts.dir, "dir", "", "repository directory (default $GIT_REPO_DIR)")
	f.StringVarP(&gitstatsOpts.out, "out", "o", "", "snapshot file (default $GITSTATS_FILE)")
	f.StringVar(&gitstatsOpts.since, "since", "", `only read commits after this date, as accepted by git (e.g. "1 year ago")`)
	f.IntVar(&gitstatsOpts.recent, "recent", 20, "number of recent commits kept in the snapshot")
	rootCmd.AddCommand(gitstatsCmd)
}
