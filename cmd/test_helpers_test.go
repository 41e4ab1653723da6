package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// executeRoot runs the root command with args against a clean configuration
// and returns everything written to stdout.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	resetCommandState(t)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetCommandState(t *testing.T) {
	t.Helper()

	originalNoColor := color.NoColor
	color.NoColor = true
	originalAppCtx := globalAppContext
	t.Cleanup(func() {
		color.NoColor = originalNoColor
		globalAppContext = originalAppCtx
		viper.Reset()
	})

	viper.Reset()
	cfgFile = ""
	*cliConfig = *newCLIConfig()

	resetFlags := func(flags *pflag.FlagSet) {
		flags.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	resetFlags(rootCmd.PersistentFlags())
	resetFlags(versionCmd.Flags())
}
