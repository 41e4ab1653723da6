package cmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/khanhnv2901/p2psec/internal/analyzer"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorHeading = color.New(color.Bold).SprintFunc()
)

func formatStatusWithColor(status string) string {
	switch strings.ToUpper(status) {
	case "PASS", "PASSED", "HIGH", analyzer.StatusGood:
		return colorSuccess(status)
	case "FAIL", "FAILED", "CRITICAL", analyzer.StatusCritical:
		return colorError(status)
	case "MEDIUM", analyzer.StatusNeedsImprovement:
		return colorWarn(status)
	default:
		return status
	}
}

func statusIndicator(label string) string {
	switch label {
	case analyzer.StatusGood:
		return "🟢"
	case analyzer.StatusNeedsImprovement:
		return "🟡"
	default:
		return "🔴"
	}
}
