package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/spf13/cobra"

	"github.com/Frozzzo/SeguridadUrbana/internal/dashboard"
	"github.com/Frozzzo/SeguridadUrbana/internal/view"
	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// Variables to hold flag values
var (
	alertType     string
	alertMessage  string
	alertLocation string
)

// Parent Command
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Community alerts",
	Long:  `List community alerts or post a new one.`,
}

// List Command
var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List community alerts, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		api, sess := setupClient()

		alerts, err := api.GetAlerts(sess.Token())
		if err != nil {
			fmt.Printf("Error fetching alerts: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(alerts); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		if len(alerts) == 0 {
			fmt.Println("No hay alertas recientes")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIME\tTYPE\tUSER\tLOCATION\tMESSAGE")
		fmt.Fprintln(w, "----\t----\t----\t--------\t-------")

		now := time.Now()
		for _, a := range alerts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				view.FormatRelativeTime(a.CreatedAt, now),
				a.Type,
				a.UserName,
				a.Location,
				a.Message,
			)
		}
		w.Flush()
	},
}

// Create Command
var alertsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Post a new community alert",
	Example: `  seguridad-urbana alerts create --type emergency --message "Fire on 5th" --location "Main St 12"`,
	Run: func(cmd *cobra.Command, args []string) {
		api, sess := setupClient()

		if alertType != models.AlertSuspicious && alertType != models.AlertEmergency && alertType != models.AlertInfo {
			fmt.Printf("Error: invalid alert type %q (suspicious, emergency, info)\n", alertType)
			os.Exit(1)
		}

		logger, err := logs.NewLog()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// The create goes through the dashboard controller so it follows the
		// create-then-reload contract instead of inserting locally.
		ctrl := dashboard.NewController(logger, api, sess, nil, nil)
		if err := ctrl.CreateAlert(alertType, alertMessage, alertLocation); err != nil {
			fmt.Printf("Error creating alert: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Alerta enviada.")
		fmt.Println()
		view.RenderAlertPanel(os.Stdout, ctrl.Alerts(), time.Now())
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsCreateCmd)

	alertsCreateCmd.Flags().StringVar(&alertType, "type", models.AlertSuspicious, "Alert type (suspicious, emergency, info)")
	alertsCreateCmd.Flags().StringVar(&alertMessage, "message", "", "What is happening")
	alertsCreateCmd.Flags().StringVar(&alertLocation, "location", "", "Where it is happening")
	_ = alertsCreateCmd.MarkFlagRequired("message")
	_ = alertsCreateCmd.MarkFlagRequired("location")
}
