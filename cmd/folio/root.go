package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - a portfolio site engine built with Go, Echo, and templ",
	Long: `folio serves a project gallery, a blog, site search and a contact form
whose messages are relayed to the site owner by email.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
	rootCmd.AddCommand(serveCmd, imagesCmd, versionCmd)
}

// legacyEnv maps config keys to the environment names older deployments use.
var legacyEnv = map[string]string{
	"smtp.service":  "EMAIL_SERVICE",
	"smtp.username": "EMAIL_USER",
	"smtp.password": "EMAIL_PASSWORD",
	"owner_mail":    "CONTACT_EMAIL",
	"addr":          "PORT",
}

// loadConfig reads folio.yaml (or --config) and FOLIO_* environment variables.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("name", "Portfolio")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("database_path", "data/folio.db")
	v.SetDefault("static_dir", "public")
	v.SetDefault("log_level", "info")
	v.SetDefault("contact_limit", 5)
	v.SetDefault("contact_window", "10m")
	v.SetDefault("log_retention", "4320h")
	v.SetDefault("search_cache_size", 256)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "FOLIO_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}
