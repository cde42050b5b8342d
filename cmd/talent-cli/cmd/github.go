package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/univ-lehavre/talent-finder-sub000/internal/github"
	"github.com/univ-lehavre/talent-finder-sub000/internal/gitstats"
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Query the GitHub API",
}

var countsRepo string

var githubCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count open issues and pull requests",
	Long: `Counts the open issues and pull requests of a GitHub repository. The
repository defaults to the origin remote of $GIT_REPO_DIR.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		remote := countsRepo
		if remote == "" {
			var err error
			remote, err = gitstats.RemoteURL(cmd.Context(), gitRunner, cfg.GetGitRepoDir(), "origin")
			if err != nil {
				return fmt.Errorf("no --repo given and no origin remote: %w", err)
			}
		} else {
			remote = "https://github.com/" + remote
		}
		repo, err := github.ParseRemote(remote)
		if err != nil {
			return err
		}

		counts, err := github.NewClient(cfg).Counts(cmd.Context(), repo)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s\n", repo.FullName())
		fmt.Fprintf(w, "  open issues         %d\n", counts.OpenIssues)
		fmt.Fprintf(w, "  open pull requests  %d\n", counts.OpenPulls)
		return nil
	},
}

func init() {
	githubCountsCmd.Flags().StringVar(&countsRepo, "repo", "", "repository as owner/name")
	githubCmd.AddCommand(githubCountsCmd)
	rootCmd.AddCommand(githubCmd)
}
