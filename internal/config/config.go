package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".seguridad-urbana" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".seguridad-urbana")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// SaveSession persists the bearer token and user identity so that later
// invocations stay authenticated (the CLI's version of a browser session).
func SaveSession(token string, user models.User) error {
	viper.Set("token", token)
	viper.Set("user.id", user.ID)
	viper.Set("user.name", user.Name)
	viper.Set("user.address", user.Address)
	viper.Set("user.email", user.Email)
	return writeConfig()
}

// ClearSession wipes the persisted token and identity. Logout is purely
// local; the server keeps no session state to tear down.
func ClearSession() error {
	viper.Set("token", "")
	viper.Set("user.id", "")
	viper.Set("user.name", "")
	viper.Set("user.address", "")
	viper.Set("user.email", "")
	return writeConfig()
}

// SavedUser reconstructs the persisted identity.
func SavedUser() models.User {
	return models.User{
		ID:      viper.GetString("user.id"),
		Name:    viper.GetString("user.name"),
		Address: viper.GetString("user.address"),
		Email:   viper.GetString("user.email"),
	}
}

func writeConfig() error {
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".seguridad-urbana.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
