package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"multiselect/internal/ui"
)

func newKeysCmd(a *app) *cobra.Command {
	var (
		pager bool
		width int
		style string
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := ui.RenderKeyReference(a.loc, width, style)
			if err != nil {
				return err
			}
			if pager {
				return ui.ShowInPager(out)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVarP(&pager, "pager", "p", false, "open the reference in a pager")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap width, 0 disables wrapping")
	cmd.Flags().StringVar(&style, "style", "", `glamour style ("dark", "light", "notty"), empty detects it`)
	return cmd
}
