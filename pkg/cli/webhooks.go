package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hooklinehq/hookline/pkg/models"
)

var webhooksCmd = &cobra.Command{
	Use:   "webhooks",
	Short: "List webhooks",
	RunE: func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := connectDatabase(cfg); err != nil {
			return err
		}

		webhooks, err := models.ListWebhooks()
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
				_, _ = fmt.Fprintln(writer, "ID\tAUTOMATION\tACTIVE\tTRIGGERS\tLAST TRIGGERED")
				for _, webhook := range webhooks {
					lastTriggered := "never"
					if webhook.LastTriggeredAt != nil {
						lastTriggered = webhook.LastTriggeredAt.Format("2006-01-02 15:04:05")
					}
					_, _ = fmt.Fprintf(writer, "%s\t%s\t%t\t%d\t%s\n",
						webhook.ID, webhook.AutomationID, webhook.Active, webhook.TriggerCount, lastTriggered)
				}
				return writer.Flush()
			})
		}

		return r.Render(webhooks)
	},
}
