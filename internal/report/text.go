package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
)

// TextReporter implements schema.Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

// displayName renders a case log key. Cases whose payload never resolved
// to a catalog type group under the empty name.
func displayName(tn schema.TypeName) string {
	if tn == "" {
		return "(unresolved type)"
	}
	return string(tn)
}

func (tr *TextReporter) Write(w io.Writer, r *schema.ValidationReport) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "RSV VALIDATION REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	// Collect all type names to ensure sorted output
	namesMap := make(map[schema.TypeName]bool)
	for _, tn := range r.PassedCases.TypeNames() {
		namesMap[tn] = true
	}
	for _, tn := range r.FailedCases.TypeNames() {
		namesMap[tn] = true
	}

	names := make([]schema.TypeName, 0, len(namesMap))
	for tn := range namesMap {
		names = append(names, tn)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i] < names[j]
	})

	for _, tn := range names {
		nameCol := colWhite
		passed := r.PassedCases[tn]
		failed := r.FailedCases[tn]

		statusText := "PASS"
		statusCol := colGreen
		if len(failed) > 0 {
			statusText = "FAIL"
			statusCol = colRed
			nameCol = colRed
		}

		status := tr.cs(statusCol, "["+statusText+"]")
		nameStr := tr.cs(nameCol, displayName(tn))
		suffix := fmt.Sprintf("(pass: %d, fail: %d)", len(passed), len(failed))

		fmt.Fprintf(w, "%s %s %s\n", status, nameStr, tr.cs(statusCol, suffix))

		if tr.Verbose {
			// Show for each type, the cases that passed and failed, along with any errors
			for _, c := range passed {
				fmt.Fprintf(w, "  %s %s (%s)\n",
					tr.cs(colGreen, "✓"),
					tr.cs(colGrey, c.Path),
					tr.cs(colGreen, c.ResultLabel()))
			}

			for _, c := range failed {
				fmt.Fprintf(w, "  %s %s (%s):\n",
					tr.cs(colRed, "✗"),
					tr.cs(colGrey, c.Path),
					tr.cs(colRed, c.ResultLabel()))
				fmt.Fprintf(w, "    %v\n", c.Err)
			}
		} else {
			// Just show the failures
			for _, c := range failed {
				fmt.Fprintf(w, "  %s %s (%s):\n",
					tr.cs(colRed, "✗"),
					tr.cs(colGrey, c.Path),
					tr.cs(colRed, c.ResultLabel()))
				fmt.Fprintf(w, "    %v\n", c.Err)
			}
		}
	}

	links := r.Links()
	if len(links) > 0 {
		fmt.Fprintf(w, "%s\n", divider)
		fmt.Fprintf(w, "%s %s\n",
			tr.cs(colGrey, "Resource links discovered:"),
			tr.cs(colWhite, fmt.Sprintf("%d", len(links))))
		if tr.Verbose {
			for _, l := range links {
				fmt.Fprintf(w, "  %s\n", tr.cs(colGrey, l))
			}
		}
	}

	totalPassed, totalFailed := r.Counts()

	fmt.Fprintf(w, "%s\n", divider)
	summaryLabel := tr.cs(colBoldWhite, "Validation summary: ")
	summaryStats := fmt.Sprintf("%d passed, %d failed", totalPassed, totalFailed)
	statsColor := colBoldGreen
	if totalFailed > 0 {
		statsColor = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n", summaryLabel, tr.cs(statsColor, summaryStats))
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}
