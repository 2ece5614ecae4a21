package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Frozzzo/SeguridadUrbana/internal/view"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the neighborhood emergency contacts",
	Long: `Lists the emergency contacts with their phone numbers and tel: URIs.
Open the URI with your platform dialer to place the call.`,
	Run: func(cmd *cobra.Command, args []string) {
		api, sess := setupClient()

		contacts, err := api.GetEmergencyContacts(sess.Token())
		if err != nil {
			fmt.Printf("Error fetching emergency contacts: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(contacts); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		view.RenderContacts(os.Stdout, contacts)
	},
}

func init() {
	rootCmd.AddCommand(contactsCmd)
}
