package output

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/workspace"
)

// Tool is the name reported in every output format.
const Tool = "auditmark"

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// Section is the merged review state of one workspace root.
type Section struct {
	Root    workspace.Root `json:"root"`
	Authors []string       `json:"authors,omitempty"`
	State   audit.State    `json:"state"`
	Summary audit.Summary  `json:"summary"`
}

// Report is everything an export renders.
type Report struct {
	Tool     string        `json:"tool"`
	Version  string        `json:"version"`
	Sections []Section     `json:"sections"`
	Summary  audit.Summary `json:"summary"`
}

// NewReport computes per-section and overall summaries. Sections keep the
// order given.
func NewReport(version string, sections ...Section) *Report {
	r := &Report{Tool: Tool, Version: version, Sections: make([]Section, 0, len(sections))}
	for _, s := range sections {
		s.Summary = audit.ComputeSummary(s.State)
		r.Summary = addSummary(r.Summary, s.Summary)
		r.Sections = append(r.Sections, s)
	}
	return r
}

func addSummary(a, b audit.Summary) audit.Summary {
	a.Findings += b.Findings
	a.Notes += b.Notes
	a.Resolved += b.Resolved
	a.AuditedFiles += b.AuditedFiles
	a.PartialRegions += b.PartialRegions
	a.Counts.High += b.Counts.High
	a.Counts.Medium += b.Counts.Medium
	a.Counts.Low += b.Counts.Low
	a.Counts.Informational += b.Counts.Informational
	a.Counts.Undetermined += b.Counts.Undetermined
	if audit.SeverityRank(b.HighestSeverity) > audit.SeverityRank(a.HighestSeverity) {
		a.HighestSeverity = b.HighestSeverity
	}
	return a
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to outPath, or to stdout when outPath is empty.
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

var severityOrder = []audit.Severity{
	audit.SeverityHigh,
	audit.SeverityMedium,
	audit.SeverityLow,
	audit.SeverityInformational,
	audit.SeverityUndetermined,
}

// groupBySeverity buckets findings by severity. Unknown severities land in
// Undetermined. Within a bucket entries are ordered by primary path.
func groupBySeverity(entries []audit.Entry) map[audit.Severity][]audit.Entry {
	m := make(map[audit.Severity][]audit.Entry)
	for _, e := range entries {
		if e.EntryType != audit.EntryTypeFinding {
			continue
		}
		sev := e.Details.Severity
		if audit.SeverityRank(sev) == 0 {
			sev = audit.SeverityUndetermined
		}
		m[sev] = append(m[sev], e)
	}
	for _, group := range m {
		slices.SortStableFunc(group, func(a, b audit.Entry) int {
			return strings.Compare(primaryLocation(a).Path, primaryLocation(b).Path)
		})
	}
	return m
}

func notes(entries []audit.Entry) []audit.Entry {
	var out []audit.Entry
	for _, e := range entries {
		if e.EntryType == audit.EntryTypeNote {
			out = append(out, e)
		}
	}
	return out
}

func primaryLocation(e audit.Entry) audit.Location {
	if len(e.Locations) > 0 {
		return e.Locations[0]
	}
	return audit.Location{Path: "unknown"}
}

// lineSpan renders a 0-based location as 1-based "a-b" or "a".
func lineSpan(l audit.Location) string {
	if l.StartLine == l.EndLine {
		return fmt.Sprintf("%d", l.StartLine+1)
	}
	return fmt.Sprintf("%d-%d", l.StartLine+1, l.EndLine+1)
}

func sectionTitle(s Section) string {
	switch {
	case s.Root.Label != "" && s.Root.Path != "":
		return fmt.Sprintf("%s (%s)", s.Root.Label, s.Root.Path)
	case s.Root.Path != "":
		return s.Root.Path
	default:
		return s.Root.Label
	}
}
