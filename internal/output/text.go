package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/auditmark/internal/audit"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("auditmark report %s\n", report.Version)
	ew.println(strings.Repeat("─", 60))
	writeTextSummary(ew, report.Summary)
	ew.println(strings.Repeat("─", 60))

	for _, sec := range report.Sections {
		ew.printf("\nRoot: %s\n", sectionTitle(sec))
		if len(sec.Authors) > 0 {
			ew.printf("Authors: %s\n", strings.Join(sec.Authors, ", "))
		}
		if sec.State.GitSha != "" {
			ew.printf("Commit: %s\n", sec.State.GitSha)
		}
		ew.printf("Audited files: %d | Partially audited regions: %d | Resolved: %d\n",
			sec.Summary.AuditedFiles, sec.Summary.PartialRegions, sec.Summary.Resolved)

		if sec.Summary.Findings == 0 && sec.Summary.Notes == 0 {
			ew.println("  No findings or notes.")
			continue
		}

		grouped := groupBySeverity(sec.State.TreeEntries)
		for _, sev := range severityOrder {
			entries := grouped[sev]
			if len(entries) == 0 {
				continue
			}
			ew.printf("\n%s %s\n", severityIcon(sev), strings.ToUpper(string(sev)))
			ew.println(strings.Repeat("─", 40))
			for _, e := range entries {
				writeTextEntry(ew, e)
			}
		}

		if ns := notes(sec.State.TreeEntries); len(ns) > 0 {
			ew.println("\nNOTES")
			ew.println(strings.Repeat("─", 40))
			for _, e := range ns {
				writeTextEntry(ew, e)
			}
		}
	}

	return ew.err
}

func writeTextSummary(ew *errWriter, s audit.Summary) {
	ew.printf("Findings: %d total", s.Findings)
	if s.Findings > 0 {
		ew.printf(" (%d high, %d medium, %d low, %d informational, %d undetermined)",
			s.Counts.High, s.Counts.Medium, s.Counts.Low, s.Counts.Informational, s.Counts.Undetermined)
	}
	ew.println("")
	ew.printf("Notes: %d | Resolved: %d | Audited files: %d\n", s.Notes, s.Resolved, s.AuditedFiles)
}

func writeTextEntry(ew *errWriter, e audit.Entry) {
	loc := primaryLocation(e)
	ew.printf("\n  %s:%s  %s\n", loc.Path, lineSpan(loc), e.Label)
	if e.EntryType == audit.EntryTypeFinding {
		ew.printf("  Author: %s | Type: %s | Difficulty: %s\n",
			e.Author, orDash(string(e.Details.Type)), orDash(string(e.Details.Difficulty)))
	} else {
		ew.printf("  Author: %s\n", e.Author)
	}
	for _, extra := range e.Locations[min(1, len(e.Locations)):] {
		ew.printf("  Also: %s:%s %s\n", extra.Path, lineSpan(extra), extra.Label)
	}
	for _, line := range wrapText(e.Details.Description, 70) {
		ew.printf("    %s\n", line)
	}
	if e.Details.Recommendation != "" {
		ew.println("  Recommendation:")
		for _, line := range wrapText(e.Details.Recommendation, 70) {
			ew.printf("    %s\n", line)
		}
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityIcon(s audit.Severity) string {
	switch s {
	case audit.SeverityHigh:
		return "[!!]"
	case audit.SeverityMedium:
		return "[!]"
	case audit.SeverityLow:
		return "[-]"
	case audit.SeverityInformational:
		return "[i]"
	default:
		return "[?]"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
