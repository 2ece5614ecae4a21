package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Frozzzo/SeguridadUrbana/internal/dashboard"
	"github.com/Frozzzo/SeguridadUrbana/internal/push"
	"github.com/Frozzzo/SeguridadUrbana/internal/session"
	"github.com/Frozzzo/SeguridadUrbana/internal/view"
)

var notifyFlag bool

// terminalNotifier surfaces an alert the way a desktop notification would:
// a BEL plus one line on stderr, so it survives the next redraw.
type terminalNotifier struct{}

func (terminalNotifier) Notify(title, body string) {
	fmt.Fprintf(os.Stderr, "\a[%s] %s\n", title, body)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live neighborhood dashboard",
	Long: `Loads cameras, alerts and emergency contacts, subscribes to the push
channel, and redraws on every update. Press Ctrl-C to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		api, sess := setupClient()

		logger, err := logs.NewLog()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		channel := push.New(logger, viper.GetString("base_url"))

		// The notifier is only wired in when the user opted in, mirroring a
		// previously granted notification permission.
		var notifier dashboard.Notifier
		if notifyFlag {
			notifier = terminalNotifier{}
		}

		ctrl := dashboard.NewController(logger, api, sess, channel, notifier)
		ctrl.OnChange(func() { redraw(ctrl, sess) })

		redraw(ctrl, sess)
		ctrl.Start()

		// Block until Ctrl-C, then detach the push connection. Nothing else
		// needs tearing down.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop

		ctrl.Stop()
		fmt.Println("\nHasta luego.")
	},
}

func redraw(ctrl *dashboard.Controller, sess *session.Session) {
	out := os.Stdout

	// Clear screen and home the cursor.
	fmt.Fprint(out, "\033[2J\033[H")

	if user := sess.User(); user != nil {
		fmt.Fprintf(out, "Seguridad Urbana — Bienvenido, %s (%s)\n\n", user.Name, user.Address)
	}

	if ctrl.Phase() == dashboard.PhaseLoading {
		fmt.Fprintln(out, "Cargando...")
		return
	}

	view.RenderCameraGrid(out, ctrl.Cameras())
	fmt.Fprintln(out)
	view.RenderAlertPanel(out, ctrl.Alerts(), time.Now())
	fmt.Fprintln(out)
	view.RenderContacts(out, ctrl.Contacts())
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().BoolVar(&notifyFlag, "notify", false, "Ring the terminal bell when a new alert arrives")
}
