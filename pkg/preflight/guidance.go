package preflight

import (
	"fmt"
	"strings"
)

// FormatCheckError formats a failed check result with actionable guidance.
func FormatCheckError(check CheckResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s: %s\n", check.Check, check.Message))
	sb.WriteString(fmt.Sprintf("    %s\n", getGuidance(check.Check)))

	return sb.String()
}

// FormatResults formats all preflight results for the log.
func FormatResults(results *Results) string {
	var sb strings.Builder

	sb.WriteString(results.Summary + "\n")
	for i := range results.Checks {
		status := "PASS"
		if !results.Checks[i].Passed {
			status = "FAIL"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", status, results.Checks[i].Check, results.Checks[i].Message))
	}

	return sb.String()
}

// getGuidance returns actionable guidance for fixing a failed check.
func getGuidance(check Check) string {
	switch {
	case check == CheckToolsDir:
		return "Point TOOLKIT_TOOLS_DIR at a writable directory."
	case check == CheckShell:
		return "Install a POSIX shell at /bin/sh, or install real tool binaries so no placeholder is needed."
	case strings.HasPrefix(string(check), "script:"):
		return "Make the script executable (chmod +x) or remove it to get a fresh placeholder."
	default:
		return "Check the toolkit configuration."
	}
}
