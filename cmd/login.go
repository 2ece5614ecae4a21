package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Frozzzo/SeguridadUrbana/internal/client"
	"github.com/Frozzzo/SeguridadUrbana/internal/config"
	"github.com/Frozzzo/SeguridadUrbana/internal/session"
)

// Variables to hold flag values
var (
	host     string
	email    string
	password string
	regName  string
	regAddr  string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the Seguridad Urbana server",
	Long: `Authenticates with your neighbor account and saves the bearer token
locally for future commands.

Example:
  seguridad-urbana login --host "https://seguridad.example.com/api" --email tu@email.com --password secreta1`,
	Run: func(cmd *cobra.Command, args []string) {
		// Clean up input host (remove trailing slash if present)
		host = strings.TrimRight(host, "/")

		fmt.Printf("Authenticating against %s as '%s'...\n", host, email)

		api := client.New(host)
		sess := session.New(api)

		if err := sess.Login(email, password); err != nil {
			// Static banner, same wording the web client shows.
			fmt.Println("Credenciales inválidas")
			os.Exit(1)
		}

		fmt.Println("Login successful. Saving configuration...")

		// Save the base URL so subsequent commands know where to connect.
		viper.Set("base_url", host)

		if err := config.SaveSession(sess.Token(), *sess.User()); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Printf("Sesión guardada. Bienvenido, %s.\n", sess.User().Name)
	},
}

// registerCmd creates a new neighbor account and logs straight in
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a neighbor account",
	Long: `Registers a new account with the Seguridad Urbana server and saves the
returned session locally.

Example:
  seguridad-urbana register --host "https://seguridad.example.com/api" --email tu@email.com --password secreta1 --name "Juan Pérez" --address "Calle 123 #45-67"`,
	Run: func(cmd *cobra.Command, args []string) {
		host = strings.TrimRight(host, "/")

		fmt.Printf("Registering '%s' at %s...\n", email, host)

		api := client.New(host)
		sess := session.New(api)

		if err := sess.Register(email, password, regName, regAddr); err != nil {
			fmt.Println("Error al registrarse. Intenta de nuevo.")
			os.Exit(1)
		}

		viper.Set("base_url", host)

		if err := config.SaveSession(sess.Token(), *sess.User()); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Printf("Cuenta creada. Bienvenido, %s.\n", sess.User().Name)
	},
}

// logoutCmd clears the saved session. Purely local; there is no remote
// logout endpoint.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the saved session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.ClearSession(); err != nil {
			log.Fatalf("Failed to update configuration file: %v", err)
		}
		fmt.Println("Sesión cerrada.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVar(&host, "host", "", "API Base URL (e.g. https://seguridad.example.com/api)")
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = loginCmd.MarkFlagRequired("host")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&host, "host", "", "API Base URL")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Account password (minimum 6 characters)")
	registerCmd.Flags().StringVar(&regName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&regAddr, "address", "", "Street address")
	_ = registerCmd.MarkFlagRequired("host")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("address")
}
