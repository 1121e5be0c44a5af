package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hooklinehq/hookline/pkg/models"
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries <webhook-id>",
	Short: "List recent deliveries for a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		webhookID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid webhook id %q: %w", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := connectDatabase(cfg); err != nil {
			return err
		}

		deliveries, err := models.ListWebhookDeliveries(webhookID, 50)
		if err != nil {
			return err
		}

		r, err := renderer()
		if err != nil {
			return err
		}

		if r.IsText() {
			return r.RenderText(func(stdout io.Writer) error {
				writer := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
				_, _ = fmt.Fprintln(writer, "ID\tSTATUS\tDELIVERED AT\tRESPONSE")
				for _, delivery := range deliveries {
					_, _ = fmt.Fprintf(writer, "%s\t%d\t%s\t%s\n",
						delivery.ID, delivery.StatusCode,
						delivery.DeliveredAt.Format("2006-01-02 15:04:05"),
						delivery.ResponseBody)
				}
				return writer.Flush()
			})
		}

		return r.Render(deliveries)
	},
}
