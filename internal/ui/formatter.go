package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"flintmc/internal/config"
	"flintmc/internal/domain"
)

// Formatter formats and displays run output.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter.
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintSummary displays the end-of-run summary: a per-test PASS/FAIL list,
// the tallies table, and the failed assertions grouped by test.
func (f *Formatter) PrintSummary(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Println()
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                          Run Summary                          ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	for _, r := range output.Results {
		status := color.GreenString("PASS")
		if !r.Success {
			status = color.RedString("FAIL")
		}
		fmt.Printf("  [%s] %s %s\n", status, r.TestName,
			color.HiBlackString("(%d passed, %d failed)", r.Passed, r.Failed))
	}

	fmt.Println()
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	printRow("Total Tests", color.WhiteString("%d", meta.TotalTests))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	printRow("Passed Tests", color.GreenString("%d", meta.PassedTests))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	printRow("Failed Tests", color.RedString("%d", meta.FailedTests))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	printRow("Failed Assertions", color.RedString("%d", meta.FailedAssertions))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	printRow("Duration", color.WhiteString("%.2fs", meta.DurationSeconds))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	printRow("Server", color.WhiteString("%s", meta.Server))
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTests == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test(s) failed with %d assertion failure(s)", meta.FailedTests, meta.FailedAssertions)
		fmt.Println()
		f.printFailures(output.Details)
	}
}

func printRow(label, value string) {
	// The value carries color escape codes, so pad by visible width.
	visible := len(stripANSI(value))
	pad := 27 - visible
	if pad < 0 {
		pad = 0
	}
	fmt.Printf("│ %-31s │ %s%s │\n", label, value, strings.Repeat(" ", pad))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// printFailures prints failed assertions grouped by test.
func (f *Formatter) printFailures(failures []domain.AssertionFailure) {
	byTest := make(map[string][]domain.AssertionFailure)
	var order []string
	for _, failure := range failures {
		if _, seen := byTest[failure.TestName]; !seen {
			order = append(order, failure.TestName)
		}
		byTest[failure.TestName] = append(byTest[failure.TestName], failure)
	}

	for i, name := range order {
		connector := "├──"
		childBar := "│  "
		if i == len(order)-1 {
			connector = "└──"
			childBar = "   "
		}
		color.Cyan("%s %s", connector, name)
		tests := byTest[name]
		for j, failure := range tests {
			caseConnector := "├──"
			if j == len(tests)-1 {
				caseConnector = "└──"
			}
			color.Red("%s %s tick %d: %s", childBar, caseConnector, failure.Tick, failure.Message)
		}
	}
}

// PrintSpecList prints discovered specs, optionally with their timelines.
// failedNames marks tests that failed in the last stored run with [F].
func (f *Formatter) PrintSpecList(paths []string, specs []*domain.TestSpec, showTimeline bool, failedNames map[string]struct{}) {
	color.Green("Found %d test spec(s):\n", len(specs))

	for i, spec := range specs {
		isLast := i == len(specs)-1
		connector := "├──"
		childBar := "│  "
		if isLast {
			connector = "└──"
			childBar = "   "
		}

		failMarker := ""
		if _, ok := failedNames[spec.Name]; ok {
			failMarker = " " + color.RedString("[F]")
		}
		tagNote := ""
		if len(spec.Tags) > 0 {
			tagNote = " " + color.HiBlackString("[%s]", strings.Join(spec.Tags, ", "))
		}
		color.Cyan("%s %s%s%s %s", connector, spec.Name, failMarker, tagNote,
			color.HiBlackString("(%s)", paths[i]))

		if !showTimeline {
			continue
		}
		for j := range spec.Timeline {
			entry := &spec.Timeline[j]
			caseConnector := "├──"
			if j == len(spec.Timeline)-1 {
				caseConnector = "└──"
			}
			ticks := make([]string, len(entry.At))
			for k, t := range entry.At {
				ticks[k] = fmt.Sprintf("%d", t)
			}
			fmt.Printf("%s %s %s\n", childBar, caseConnector,
				color.YellowString("@%s %s", strings.Join(ticks, ","), entry.Action.Kind()))
		}
		if !isLast {
			fmt.Println()
		}
	}
}
