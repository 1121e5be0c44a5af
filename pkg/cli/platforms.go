package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hooklinehq/hookline/pkg/platforms"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List built-in platform definitions",
	RunE: func(*cobra.Command, []string) error {
		definitions := platforms.Definitions()

		r, err := renderer()
		if err != nil {
			return err
		}

		if r.IsText() {
			return r.RenderText(func(stdout io.Writer) error {
				writer := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
				_, _ = fmt.Fprintln(writer, "KEY\tLABEL\tTEST ENDPOINT")
				for _, def := range definitions {
					_, _ = fmt.Fprintf(writer, "%s\t%s\t%s %s\n",
						def.Key, def.Label, def.TestMethod, def.BaseURL+def.TestEndpoint)
				}
				return writer.Flush()
			})
		}

		return r.Render(definitions)
	},
}
