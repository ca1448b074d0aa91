package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"agencyweb/internal/models"
	"agencyweb/internal/workflow"
)

const dateLayout = "2006-01-02 15:04"

func (r *runner) pendingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List articles awaiting review",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			articles, err := workflow.NewReviewer(e.cms, e.log).Pending(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(articles) == 0 {
				fmt.Fprintln(out, "No articles awaiting review.")
				return nil
			}
			fmt.Fprintf(out, "%d article(s) awaiting review:\n\n", len(articles))
			return writeArticles(out, articles, false)
		}),
	}
}

func (r *runner) publishedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "published",
		Short: "List published articles",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			articles, err := workflow.NewReviewer(e.cms, e.log).Published(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(articles) == 0 {
				fmt.Fprintln(out, "No published articles.")
				return nil
			}
			fmt.Fprintf(out, "%d published article(s):\n\n", len(articles))
			return writeArticles(out, articles, true)
		}),
	}
}

func (r *runner) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show article counts by state and category",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			s, err := workflow.NewReviewer(e.cms, e.log).Stats(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total:\t%d\n", s.Total)
			fmt.Fprintf(tw, "Published:\t%d\n", s.Published)
			fmt.Fprintf(tw, "Pending:\t%d\n", s.Pending)
			fmt.Fprintf(tw, "Uncategorized:\t%d\n", s.Uncategorized)
			if len(s.ByCategory) > 0 {
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, "CATEGORY\tPUBLISHED\tPENDING\tTOTAL")
				for _, c := range s.ByCategory {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", c.Name, c.Published, c.Pending, c.Total())
				}
			}
			return tw.Flush()
		}),
	}
}

func (r *runner) approveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id> <reviewer> [notes]",
		Short: "Publish a pending article",
		Example: `  agencyctl approve 42 "Jana Novak"
  agencyctl approve 42 "Jana Novak" "Fixed the intro"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			article, err := workflow.NewReviewer(e.cms, e.log).
				Approve(cmd.Context(), args[0], args[1], optionalArg(args, 2))
			if err != nil {
				return err
			}
			e.invalidateCache(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Approved article %d %q (reviewer: %s)\n", article.ID, article.Title, args[1])
			return nil
		}),
	}
}

func (r *runner) unpublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <id> <reviewer> [reason]",
		Short: "Return a published article to review",
		Args:  cobra.RangeArgs(2, 3),
		RunE: r.withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			article, err := workflow.NewReviewer(e.cms, e.log).
				Unpublish(cmd.Context(), args[0], args[1], optionalArg(args, 2))
			if err != nil {
				return err
			}
			e.invalidateCache(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Unpublished article %d %q (reviewer: %s)\n", article.ID, article.Title, args[1])
			return nil
		}),
	}
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func writeArticles(w io.Writer, articles []models.Article, published bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	dateCol := "CREATED"
	if published {
		dateCol = "PUBLISHED"
	}
	fmt.Fprintf(tw, "ID\tTITLE\tCATEGORY\tAUTHOR\t%s\n", dateCol)

	for _, a := range articles {
		date := a.CreatedAt
		if published && a.PublishedAt != nil {
			date = *a.PublishedAt
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			a.ID, a.Title, orDash(a.CategoryName()), orDash(a.AuthorName()), formatDate(date))
	}
	return tw.Flush()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
