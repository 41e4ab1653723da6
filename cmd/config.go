package cmd

import (
	"fmt"
	"strings"

	consts "github.com/khanhnv2901/p2psec/internal/shared/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// CLIConfig captures runtime configuration shared across commands. The
// self-test inputs themselves are fixed and not configurable.
type CLIConfig struct {
	Output   string
	LogLevel string
	NoColor  bool
}

type configOverrides struct {
	Output   string
	LogLevel string
	NoColor  *bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Output:   consts.DefaultReportFilename,
		LogLevel: defaultLogLevel,
	}
}

// initConfig reads the config file. Problems with $HOME/.p2psec.yaml are
// ignored; a file named with --config must exist and parse.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".p2psec")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

func loadConfigOverrides() configOverrides {
	overrides := configOverrides{}

	if viper.IsSet("output") {
		overrides.Output = viper.GetString("output")
	}

	if viper.IsSet("log_level") {
		overrides.LogLevel = viper.GetString("log_level")
	}

	if viper.IsSet("no_color") {
		val := viper.GetBool("no_color")
		overrides.NoColor = &val
	}

	return overrides
}

// applyConfigDefaults merges config file values into the runtime config when the user
// did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadConfigOverrides()
	flags := cmd.Flags()

	if overrides.Output != "" {
		applyStringDefault(flags, "output", overrides.Output, func(v string) {
			cliConfig.Output = v
		})
	}

	if overrides.LogLevel != "" {
		applyStringDefault(flags, "log-level", overrides.LogLevel, func(v string) {
			cliConfig.LogLevel = v
		})
	}

	if overrides.NoColor != nil {
		applyBoolDefault(flags, "no-color", *overrides.NoColor, func(v bool) {
			cliConfig.NoColor = v
		})
	}
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

// buildLogger returns a production JSON logger on stderr at the given level.
func buildLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.Sugar(), nil
}
