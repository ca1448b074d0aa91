package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agencyweb/internal/locale"
	"agencyweb/internal/merge"
)

func (r *runner) categoriesCommand() *cobra.Command {
	var displayLocale string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List merged bilingual categories",
		Args:  cobra.NoArgs,
		RunE: r.withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			l, err := locale.Parse(displayLocale)
			if err != nil {
				return err
			}

			cats, err := merge.New(e.cms, e.log).BilingualCategories(cmd.Context(), l)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cats) == 0 {
				fmt.Fprintln(out, "No categories.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\tSLUG\t%s\t%s\tACTIVE\tCOLOR\n", strings.ToUpper(locale.Primary), strings.ToUpper(locale.Secondary))
			for _, c := range cats {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
					c.ID, c.Slug, c.Name[locale.Primary], c.Name[locale.Secondary], c.IsActive, orDash(c.Color))
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().StringVarP(&displayLocale, "locale", "l", locale.Default, "locale whose slugs are shown (cs or en)")
	return cmd
}
