package cmd

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/clambin/go-common/charmer"
	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/clambin/rachio-tools/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilename string
	RootCmd        = cobra.Command{
		Use:   "rachio",
		Short: "Utility for Rachio irrigation controllers",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if viper.GetBool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}
)

var args = charmer.Arguments{
	"debug":                     {Default: false, Help: "Log debug messages"},
	"rachio.url":                {Default: rachio.DefaultURL, Help: "Rachio API URL"},
	"rachio.apiKey":             {Default: "", Help: "Rachio API key"},
	"winterize.deviceName":      {Default: "", Help: "Name of the Rachio device"},
	"database.driver":           {Default: "pgx", Help: "Database driver (pgx or sqlite3)"},
	"database.connectionString": {Default: "", Help: "Database connection string"},
	"database.table":            {Default: store.DefaultTable, Help: "Database table for device events"},
	"metrics.addr":              {Default: "", Help: "Address of the Prometheus metrics & health endpoint (disabled if blank)"},
	"slack.token":               {Default: "", Help: "Slack token for winterize notifications"},
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file")
	_ = charmer.SetPersistentFlags(&RootCmd, viper.GetViper(), args)

	RootCmd.AddCommand(
		&savePersonCmd,
		&saveDeviceEventsCmd,
		&saveDeviceEventsSQLCmd,
		&startZoneCmd,
		&setDeviceHibernateCmd,
		&winterizeCmd,
	)
}

func initConfig() {
	if configFilename != "" {
		viper.SetConfigFile(configFilename)
	} else {
		viper.AddConfigPath("/etc/rachio-tools/")
		viper.AddConfigPath("$HOME/.rachio-tools")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("RACHIO_TOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// only an explicit --config file must exist
		var notFound viper.ConfigFileNotFoundError
		if configFilename != "" || !errors.As(err, &notFound) {
			slog.Error("failed to read config file", "err", err)
			os.Exit(1)
		}
	}
}
