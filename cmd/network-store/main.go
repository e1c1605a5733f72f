package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gridstore/network-store/internal/config"
)

const envPrefix = "NETWORK_STORE"

func main() {
	cfg := config.NewConfigurationWithDefaults()

	rootCmd := &cobra.Command{
		Use:           "network-store",
		Short:         "Versioned power grid network store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	rootCmd.PersistentPreRunE = cobrautil.CommandStack(syncEnv(envPrefix), setupLogger(cfg))

	rootCmd.AddCommand(
		newServeCommand(cfg),
		newMigrateCommand(cfg),
		newTokenCommand(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// syncEnv sets every flag left unset on the command line from its environment variable,
// PREFIX_FLAG_NAME with dashes turned into underscores.
func syncEnv(prefix string) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		var err error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err != nil || f.Changed || !v.IsSet(f.Name) {
				return
			}
			err = cmd.Flags().Set(f.Name, v.GetString(f.Name))
		})
		return err
	}
}

func setupLogger(cfg *config.Configuration) cobrautil.CobraRunFunc {
	return func(*cobra.Command, []string) error {
		logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	}
}

func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	if format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = lvl
	zcfg.Encoding = format
	return zcfg.Build()
}
