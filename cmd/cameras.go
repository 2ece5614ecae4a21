package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Frozzzo/SeguridadUrbana/internal/client"
	"github.com/Frozzzo/SeguridadUrbana/internal/config"
	"github.com/Frozzzo/SeguridadUrbana/internal/session"
	"github.com/Frozzzo/SeguridadUrbana/internal/view"
)

// Helper to initialize client and session from the stored config
func setupClient() (*client.Client, *session.Session) {
	baseUrl := viper.GetString("base_url")
	token := viper.GetString("token")

	if baseUrl == "" || token == "" {
		fmt.Println("Error: Not logged in. Please run 'seguridad-urbana login' first.")
		os.Exit(1)
	}

	api := client.New(baseUrl)
	sess := session.New(api)
	sess.Resume(token, config.SavedUser())

	return api, sess
}

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Neighborhood cameras",
	Long:  `List the neighborhood cameras and their connection status.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cameras",
	Run: func(cmd *cobra.Command, args []string) {
		api, sess := setupClient()

		cameras, err := api.GetCameras(sess.Token())
		if err != nil {
			fmt.Printf("Error fetching cameras: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cameras); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tLOCATION\tSTATUS\tTYPE")
		fmt.Fprintln(w, "--\t----\t--------\t------\t----")

		for _, cam := range cameras {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cam.ID,
				cam.Name,
				cam.Location,
				view.StatusBadge(cam.Status),
				cam.Type,
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(camerasCmd)
	camerasCmd.AddCommand(camerasListCmd)
}
