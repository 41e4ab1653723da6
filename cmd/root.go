package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

// AppContext carries the logger and resolved configuration for a command run.
type AppContext struct {
	Logger *zap.SugaredLogger
	Config *CLIConfig
}

type appContextKey struct{}

var globalAppContext *AppContext

var rootCmd = &cobra.Command{
	Use:   "p2psec",
	Short: "Cryptographic self-test and security report for P2P file sharing",
	Long: `Exercise the primitives a P2P file sharing client relies on and write a
security report:
  - AES-256-GCM encryption round trip
  - ECDH P-256 key exchange with PBKDF2 key derivation
  - SHA-256 chunk integrity verification
  - RSA-2048 challenge signatures for peer authentication
  - Salted IP hashing and random peer IDs

The report is written to security_analysis_report.json unless --output is set.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		applyConfigDefaults(cmd)

		if cliConfig.NoColor {
			color.NoColor = true
		}

		l, err := buildLogger(cliConfig.LogLevel)
		if err != nil {
			return err
		}

		storeAppContext(cmd, &AppContext{Logger: l, Config: cliConfig})
		l.Debugw("configuration loaded", "output", cliConfig.Output, "log_level", cliConfig.LogLevel)
		return nil
	},
	RunE: runAnalysis,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appCtx := getAppContext(cmd); appCtx.Logger != nil {
			_ = appCtx.Logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

func storeAppContext(cmd *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appContextKey{}, appCtx))
}

func getAppContext(cmd *cobra.Command) *AppContext {
	if ctx := cmd.Context(); ctx != nil {
		if appCtx, ok := ctx.Value(appContextKey{}).(*AppContext); ok {
			return appCtx
		}
	}
	if globalAppContext != nil {
		return globalAppContext
	}
	return &AppContext{Logger: zap.NewNop().Sugar(), Config: cliConfig}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.p2psec.yaml)")
	rootCmd.PersistentFlags().StringVarP(&cliConfig.Output, "output", "O", cliConfig.Output, "path of the JSON report")
	rootCmd.PersistentFlags().StringVar(&cliConfig.LogLevel, "log-level", cliConfig.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.NoColor, "no-color", cliConfig.NoColor, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}
