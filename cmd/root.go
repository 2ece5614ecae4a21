package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Frozzzo/SeguridadUrbana/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seguridad-urbana",
	Short: "A CLI for the Seguridad Urbana community security service",
	Long: `View neighborhood cameras, post and follow community alerts, and reach
emergency contacts from the terminal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seguridad-urbana.yaml)")

	// Add the persistent flag here
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
