package cmd

import (
	"fmt"
	"io"

	"github.com/khanhnv2901/p2psec/internal/analyzer"
	"github.com/khanhnv2901/p2psec/internal/compliance"
	"github.com/khanhnv2901/p2psec/internal/report"
	"github.com/spf13/cobra"
)

// newAnalyzer is swapped in tests to inject failing primitives.
var newAnalyzer = analyzer.New

// runAnalysis runs every self-test, writes the report and prints the summary.
// Findings never produce an error; only failing to save the report does.
func runAnalysis(cmd *cobra.Command, args []string) error {
	appCtx := getAppContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, colorHeading("Starting comprehensive security analysis..."))
	fmt.Fprintln(out)

	a := newAnalyzer(
		analyzer.WithLogger(appCtx.Logger),
		analyzer.WithProgress(progressPrinter(out)),
	)
	rep := a.Run()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Generating security report...")

	path, err := report.WriteToPath(appCtx.Config.Output, rep)
	if err != nil {
		return &ReportWriteError{Path: appCtx.Config.Output, Err: err}
	}
	appCtx.Logger.Infow("report written", "path", path, "score", rep.OverallSecurityScore)

	printCompletion(out, rep, path)
	printSummary(out, rep)
	return nil
}

func progressPrinter(out io.Writer) analyzer.ProgressFunc {
	return func(ev analyzer.CheckEvent) {
		switch {
		case ev.Kind == analyzer.EventStarted:
			fmt.Fprintln(out, ev.Activity)
		case ev.Err != nil:
			fmt.Fprintf(out, "%s %s: %s - %v\n", colorError("✗"), ev.Label, formatStatusWithColor("FAILED"), ev.Err)
		case ev.Passed:
			fmt.Fprintf(out, "%s %s: %s\n", colorSuccess("✓"), ev.Label, formatStatusWithColor("PASSED"))
		default:
			fmt.Fprintf(out, "%s %s: %s\n", colorError("✗"), ev.Label, formatStatusWithColor("FAILED"))
		}
	}
}

func printCompletion(out io.Writer, rep *analyzer.Report, path string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, colorHeading("=== Security Analysis Complete ==="))
	fmt.Fprintf(out, "Overall Security Score: %.1f/100\n", rep.OverallSecurityScore)
	fmt.Fprintf(out, "Tests Passed: %d/%d\n", rep.PassedCount(), len(rep.TestResults))
	fmt.Fprintf(out, "Vulnerabilities Found: %d\n", len(rep.Vulnerabilities))
	fmt.Fprintf(out, "Recommendations: %d\n", len(rep.Recommendations))
	fmt.Fprintf(out, "%s %s\n", colorInfo("Report saved to:"), path)
}

func printSummary(out io.Writer, rep *analyzer.Report) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, colorHeading("=== Security Summary ==="))
	for _, name := range rep.Checks() {
		result := rep.TestResults[name]
		status := colorError("✗") + " " + formatStatusWithColor("FAIL")
		if result.Passed() {
			status = colorSuccess("✓") + " " + formatStatusWithColor("PASS")
		}
		fmt.Fprintf(out, "%s: %s (%s)\n", name, status, formatStatusWithColor(string(result.Rating())))
	}

	if len(rep.Vulnerabilities) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, colorHeading("=== Critical Issues ==="))
		for _, v := range rep.Vulnerabilities {
			fmt.Fprintf(out, "• %s: %s (Severity: %s)\n", v.Type, v.Description, formatStatusWithColor(string(v.Severity)))
		}
	}

	if gaps := compliance.Gaps(); len(gaps) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, colorHeading("=== Compliance Gaps ==="))
		for _, g := range gaps {
			fmt.Fprintf(out, "• %s %s: %s\n", g.Framework, g.Control, g.Note)
		}
	}

	label := analyzer.StatusLabel(rep.OverallSecurityScore)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Overall Security Rating: %.1f/100\n", rep.OverallSecurityScore)
	fmt.Fprintf(out, "%s Security status: %s\n", statusIndicator(label), formatStatusWithColor(label))
}
