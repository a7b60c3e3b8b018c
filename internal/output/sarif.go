package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/auditmark/internal/audit"
)

// SARIFWriter outputs findings in SARIF v2.1.0 format. Notes are emitted
// at level "none".
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(buildSARIF(report), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool                     sarifTool                   `json:"tool"`
	OriginalURIBaseIDs       map[string]sarifArtifactLoc `json:"originalUriBaseIds,omitempty"`
	VersionControlProvenance []sarifVCS                  `json:"versionControlProvenance,omitempty"`
	Results                  []sarifResult               `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifVCS struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Fixes      []sarifFix      `json:"fixes,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLoc `json:"artifactLocation"`
	Region           sarifRegion      `json:"region"`
}

type sarifArtifactLoc struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

func buildSARIF(report *Report) sarifLog {
	var rules []sarifRule
	seen := make(map[string]bool)
	results := []sarifResult{}
	bases := make(map[string]sarifArtifactLoc)
	var vcs []sarifVCS

	for _, sec := range report.Sections {
		base := sec.Root.Label
		if base != "" && sec.Root.Path != "" {
			bases[base] = sarifArtifactLoc{URI: "file://" + sec.Root.Path + "/"}
		}
		if sec.State.GitRemote != "" {
			vcs = append(vcs, sarifVCS{RepositoryURI: sec.State.GitRemote, RevisionID: sec.State.GitSha})
		}

		for _, e := range sec.State.TreeEntries {
			ruleID := generateRuleID(e)
			level := entryLevel(e)
			if !seen[ruleID] {
				seen[ruleID] = true
				rules = append(rules, sarifRule{
					ID:               ruleID,
					Name:             ruleName(e),
					ShortDescription: sarifMessage{Text: e.Label},
					DefaultConfig:    sarifDefaultConfig{Level: level},
				})
			}

			msg := e.Details.Description
			if msg == "" {
				msg = e.Label
			}
			result := sarifResult{
				RuleID:  ruleID,
				Level:   level,
				Message: sarifMessage{Text: msg},
				Properties: map[string]any{
					"author":   e.Author,
					"severity": string(e.Details.Severity),
				},
			}
			for _, loc := range e.Locations {
				result.Locations = append(result.Locations, sarifLocation{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLoc{URI: loc.Path, URIBaseID: base},
						Region: sarifRegion{
							StartLine: loc.StartLine + 1,
							EndLine:   loc.EndLine + 1,
						},
					},
				})
			}
			if e.Details.Recommendation != "" {
				result.Fixes = append(result.Fixes, sarifFix{
					Description: sarifMessage{Text: e.Details.Recommendation},
				})
			}
			results = append(results, result)
		}
	}

	if len(bases) == 0 {
		bases = nil
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           Tool,
						Version:        report.Version,
						InformationURI: "https://github.com/dshills/auditmark",
						Rules:          rules,
					},
				},
				OriginalURIBaseIDs:       bases,
				VersionControlProvenance: vcs,
				Results:                  results,
			},
		},
	}
}

// entryLevel maps an entry to a SARIF level.
func entryLevel(e audit.Entry) string {
	if e.EntryType == audit.EntryTypeNote {
		return "none"
	}
	switch e.Details.Severity {
	case audit.SeverityHigh:
		return "error"
	case audit.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

func ruleName(e audit.Entry) string {
	if e.EntryType == audit.EntryTypeNote {
		return "note"
	}
	if e.Details.Type == audit.FindingTypeUndefined {
		return "finding"
	}
	return string(e.Details.Type)
}

// generateRuleID creates a stable rule ID from finding type and label.
func generateRuleID(e audit.Entry) string {
	h := sha256.Sum256([]byte(ruleName(e) + "/" + e.Label))
	return fmt.Sprintf("auditmark/%s/%x", e.EntryType, h[:4])
}
