package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/gitctx"
)

// MarkdownWriter outputs a markdown write-up of findings and notes. When a
// section knows its remote and commit, locations link to the exact lines.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	s := report.Summary

	ew.printf("## auditmark report\n\n")

	ew.printf("| Severity | Count |\n")
	ew.printf("|----------|-------|\n")
	ew.printf("| High     | %d    |\n", s.Counts.High)
	ew.printf("| Medium   | %d    |\n", s.Counts.Medium)
	ew.printf("| Low      | %d    |\n", s.Counts.Low)
	ew.printf("| Informational | %d |\n", s.Counts.Informational)
	ew.printf("| Undetermined | %d |\n", s.Counts.Undetermined)
	ew.printf("| **Total** | **%d** |\n\n", s.Findings)

	for _, sec := range report.Sections {
		ew.printf("### %s\n\n", sectionTitle(sec))
		ew.printf("Audited files: %d, partially audited regions: %d, resolved entries: %d\n\n",
			sec.Summary.AuditedFiles, sec.Summary.PartialRegions, sec.Summary.Resolved)

		if sec.Summary.Findings == 0 && sec.Summary.Notes == 0 {
			ew.printf("No findings. :white_check_mark:\n\n")
			continue
		}

		remote := sec.State.ClientRemote
		if remote == "" {
			remote = sec.State.GitRemote
		}
		linker := func(l audit.Location) string {
			text := fmt.Sprintf("`%s:%s`", l.Path, lineSpan(l))
			if remote == "" || sec.State.GitSha == "" {
				return text
			}
			return fmt.Sprintf("[%s](%s)", text, gitctx.Permalink(remote, sec.State.GitSha, l.Path, l.Region()))
		}

		grouped := groupBySeverity(sec.State.TreeEntries)
		for _, sev := range severityOrder {
			entries := grouped[sev]
			if len(entries) == 0 {
				continue
			}
			ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n", mdSeverityIcon(sev), strings.ToUpper(string(sev)), len(entries))
			for _, e := range entries {
				writeMarkdownEntry(ew, e, linker)
			}
			ew.printf("</details>\n\n")
		}

		if ns := notes(sec.State.TreeEntries); len(ns) > 0 {
			ew.printf("<details>\n<summary>:memo: NOTES (%d)</summary>\n\n", len(ns))
			for _, e := range ns {
				writeMarkdownEntry(ew, e, linker)
			}
			ew.printf("</details>\n\n")
		}
	}

	return ew.err
}

func writeMarkdownEntry(ew *errWriter, e audit.Entry, link func(audit.Location) string) {
	ew.printf("#### %s\n\n", e.Label)
	if e.EntryType == audit.EntryTypeFinding {
		ew.printf("**Difficulty:** %s | **Type:** %s | **Author:** %s\n\n",
			orDash(string(e.Details.Difficulty)), orDash(string(e.Details.Type)), e.Author)
	} else {
		ew.printf("**Author:** %s\n\n", e.Author)
	}
	for _, l := range e.Locations {
		if l.Label != "" {
			ew.printf("- %s %s\n", link(l), l.Label)
		} else {
			ew.printf("- %s\n", link(l))
		}
	}
	if len(e.Locations) > 0 {
		ew.printf("\n")
	}
	if e.Details.Description != "" {
		ew.printf("%s\n\n", e.Details.Description)
	}
	if e.Details.Exploit != "" {
		ew.printf("**Exploit scenario:**\n\n> %s\n\n", strings.ReplaceAll(e.Details.Exploit, "\n", "\n> "))
	}
	if e.Details.Recommendation != "" {
		ew.printf("**Recommendation:**\n\n> %s\n\n", strings.ReplaceAll(e.Details.Recommendation, "\n", "\n> "))
	}
	ew.printf("---\n\n")
}

func mdSeverityIcon(s audit.Severity) string {
	switch s {
	case audit.SeverityHigh:
		return ":red_circle:"
	case audit.SeverityMedium:
		return ":orange_circle:"
	case audit.SeverityLow:
		return ":yellow_circle:"
	case audit.SeverityInformational:
		return ":large_blue_circle:"
	default:
		return ":white_circle:"
	}
}
