// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/arshsnaz/zidio-job-platform/internal/scheduling"
	"github.com/arshsnaz/zidio-job-platform/internal/workflow"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStateCatalogue outputs every workflow state with its allowed moves.
func (p *Printer) PrintStateCatalogue(states []workflow.StateInfo) {
	if len(states) == 0 {
		return
	}

	var sb strings.Builder
	for i, info := range states {
		sb.WriteString(fmt.Sprintf("%s (%s)", info.State, info.DisplayName))
		if info.Terminal {
			sb.WriteString(" [terminal]")
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", info.Description))
		if len(info.AllowedTargets) > 0 {
			sb.WriteString(fmt.Sprintf("  -> %s\n", joinStates(info.AllowedTargets)))
		}
		if len(info.Actions) > 0 {
			sb.WriteString(fmt.Sprintf("  actions: %s\n", joinActions(info.Actions)))
		}
		if i < len(states)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WORKFLOW STATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviewTypes outputs the interview type catalogue.
func (p *Printer) PrintInterviewTypes(kinds []scheduling.Type) {
	if len(kinds) == 0 {
		return
	}

	var sb strings.Builder
	for _, t := range kinds {
		sb.WriteString(fmt.Sprintf("%-22s %s\n", t, t.DisplayName()))
	}
	p.printBox("INTERVIEW TYPES", strings.TrimSuffix(sb.String(), "\n"))
}

func joinStates(states []workflow.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinActions(actions []workflow.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}
