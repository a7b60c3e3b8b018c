package audit

import "github.com/dshills/auditmark/internal/region"

// EntryType distinguishes findings from notes. It is serialized as an integer.
type EntryType int

const (
	EntryTypeFinding EntryType = 0
	EntryTypeNote    EntryType = 1
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeFinding:
		return "finding"
	case EntryTypeNote:
		return "note"
	default:
		return "unknown"
	}
}

// ParseEntryType maps "finding" or "note" to an EntryType.
func ParseEntryType(s string) (EntryType, bool) {
	switch s {
	case "finding":
		return EntryTypeFinding, true
	case "note":
		return EntryTypeNote, true
	default:
		return 0, false
	}
}

// Severity of a finding.
type Severity string

const (
	SeverityHigh          Severity = "High"
	SeverityMedium        Severity = "Medium"
	SeverityLow           Severity = "Low"
	SeverityInformational Severity = "Informational"
	SeverityUndetermined  Severity = "Undetermined"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInformational:
		return 1
	default:
		return 0
	}
}

// Difficulty of exploiting a finding.
type Difficulty string

const (
	DifficultyHigh         Difficulty = "High"
	DifficultyMedium       Difficulty = "Medium"
	DifficultyLow          Difficulty = "Low"
	DifficultyNA           Difficulty = "N/A"
	DifficultyUndetermined Difficulty = "Undetermined"
)

// FindingType is the category of a finding.
type FindingType string

const (
	FindingTypeAccessControls    FindingType = "Access Controls"
	FindingTypeAuditingLogging   FindingType = "Auditing and Logging"
	FindingTypeAuthentication    FindingType = "Authentication"
	FindingTypeConfiguration     FindingType = "Configuration"
	FindingTypeCryptography      FindingType = "Cryptography"
	FindingTypeDataExposure      FindingType = "Data Exposure"
	FindingTypeDataValidation    FindingType = "Data Validation"
	FindingTypeDenialOfService   FindingType = "Denial of Service"
	FindingTypeErrorReporting    FindingType = "Error Reporting"
	FindingTypePatching          FindingType = "Patching"
	FindingTypeSessionManagement FindingType = "Session Management"
	FindingTypeTesting           FindingType = "Testing"
	FindingTypeTiming            FindingType = "Timing"
	FindingTypeUndefinedBehavior FindingType = "Undefined Behavior"
	FindingTypeUndefined         FindingType = ""
)

// Known reports whether t is one of the categories above.
func (t FindingType) Known() bool {
	switch t {
	case FindingTypeAccessControls, FindingTypeAuditingLogging, FindingTypeAuthentication,
		FindingTypeConfiguration, FindingTypeCryptography, FindingTypeDataExposure,
		FindingTypeDataValidation, FindingTypeDenialOfService, FindingTypeErrorReporting,
		FindingTypePatching, FindingTypeSessionManagement, FindingTypeTesting,
		FindingTypeTiming, FindingTypeUndefinedBehavior, FindingTypeUndefined:
		return true
	}
	return false
}

// Details holds the free-form write-up of an entry. It takes no part in
// structural equality.
type Details struct {
	Severity       Severity    `json:"severity"`
	Difficulty     Difficulty  `json:"difficulty"`
	Type           FindingType `json:"type"`
	Description    string      `json:"description"`
	Exploit        string      `json:"exploit"`
	Recommendation string      `json:"recommendation"`
}

// Location is one span of lines referenced by an entry. Path is relative to
// the workspace root identified by RootPath.
type Location struct {
	Path        string `json:"path"`
	StartLine   int    `json:"startLine"`
	EndLine     int    `json:"endLine"`
	Label       string `json:"label"`
	Description string `json:"description"`
	RootPath    string `json:"rootPath"`
}

// Region returns the line range of the location.
func (l Location) Region() region.LineRegion {
	return region.LineRegion{StartLine: l.StartLine, EndLine: l.EndLine}
}

// Entry is a finding or a note, possibly spanning several locations.
type Entry struct {
	Label     string     `json:"label"`
	EntryType EntryType  `json:"entryType"`
	Author    string     `json:"author"`
	Details   Details    `json:"details"`
	Locations []Location `json:"locations"`
}

// AuditedFile marks a whole file as reviewed by one author.
type AuditedFile struct {
	Path   string `json:"path"`
	Author string `json:"author"`
}

// PartiallyAuditedFile is one reviewed sub-range of a file.
type PartiallyAuditedFile struct {
	Path      string `json:"path"`
	Author    string `json:"author"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Region returns the line range of the partial audit.
func (p PartiallyAuditedFile) Region() region.LineRegion {
	return region.LineRegion{StartLine: p.StartLine, EndLine: p.EndLine}
}

// setRegion overwrites the line range of p.
func (p *PartiallyAuditedFile) setRegion(r region.LineRegion) {
	p.StartLine = r.StartLine
	p.EndLine = r.EndLine
}

// State is the review state of one author for one workspace root, as
// persisted in a .weaudit file.
type State struct {
	ClientRemote          string                 `json:"clientRemote"`
	GitRemote             string                 `json:"gitRemote"`
	GitSha                string                 `json:"gitSha"`
	TreeEntries           []Entry                `json:"treeEntries"`
	AuditedFiles          []AuditedFile          `json:"auditedFiles"`
	PartiallyAuditedFiles []PartiallyAuditedFile `json:"partiallyAuditedFiles"`
	ResolvedEntries       []Entry                `json:"resolvedEntries"`
}

// SeverityCounts holds finding counts by severity.
type SeverityCounts struct {
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	Informational int `json:"informational"`
	Undetermined  int `json:"undetermined"`
}

// Summary gives an overview of a state.
type Summary struct {
	Findings        int            `json:"findings"`
	Notes           int            `json:"notes"`
	Resolved        int            `json:"resolved"`
	AuditedFiles    int            `json:"auditedFiles"`
	PartialRegions  int            `json:"partialRegions"`
	Counts          SeverityCounts `json:"counts"`
	HighestSeverity Severity       `json:"highestSeverity,omitempty"`
}

// ComputeSummary calculates the summary of a state.
func ComputeSummary(s State) Summary {
	sum := Summary{
		Resolved:       len(s.ResolvedEntries),
		AuditedFiles:   len(s.AuditedFiles),
		PartialRegions: len(s.PartiallyAuditedFiles),
	}
	for _, e := range s.TreeEntries {
		if e.EntryType == EntryTypeNote {
			sum.Notes++
			continue
		}
		sum.Findings++
		switch e.Details.Severity {
		case SeverityHigh:
			sum.Counts.High++
		case SeverityMedium:
			sum.Counts.Medium++
		case SeverityLow:
			sum.Counts.Low++
		case SeverityInformational:
			sum.Counts.Informational++
		default:
			sum.Counts.Undetermined++
		}
		if SeverityRank(e.Details.Severity) > SeverityRank(sum.HighestSeverity) {
			sum.HighestSeverity = e.Details.Severity
		}
	}
	return sum
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	if e.Locations != nil {
		locs := make([]Location, len(e.Locations))
		copy(locs, e.Locations)
		e.Locations = locs
	}
	return e
}
