package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agencyweb/internal/workflow"
)

func (r *runner) assignCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "assign-categories",
		Short: "Assign categories to uncategorized articles by title keywords",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			res, err := workflow.NewAssigner(e.cms, nil, e.log).Run(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			if !dryRun && res.Updated > 0 {
				e.invalidateCache(cmd.Context())
			}

			out := cmd.OutOrStdout()
			if len(res.Assignments) > 0 {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY")
				for _, a := range res.Assignments {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", a.ArticleID, a.Title, a.CategorySlug)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}

			if dryRun {
				fmt.Fprintf(out, "Dry run: %d would be updated, %d skipped\n", len(res.Assignments), res.Skipped)
				return nil
			}
			fmt.Fprintf(out, "Updated: %d, failed: %d, skipped: %d\n", res.Updated, res.Failed, res.Skipped)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the assignments without writing them")
	return cmd
}

func (r *runner) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create test categories, localizations, an author and draft articles",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			res, err := workflow.NewSeeder(e.cms, nil, e.log).Run(cmd.Context())
			if err != nil {
				return err
			}
			if res.Changed() {
				e.invalidateCache(cmd.Context())
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Categories created:\t%d\n", res.Categories)
			fmt.Fprintf(tw, "Localizations created:\t%d\n", res.Localizations)
			fmt.Fprintf(tw, "Authors created:\t%d\n", res.Authors)
			fmt.Fprintf(tw, "Articles created:\t%d\n", res.Articles)
			fmt.Fprintf(tw, "Already present:\t%d\n", res.Existing)
			fmt.Fprintf(tw, "Failed:\t%d\n", res.Failed)
			return tw.Flush()
		}),
	}
}
