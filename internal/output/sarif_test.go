package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/auditmark/internal/audit"
)

func TestSARIFWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFWriter{}).Write(&buf, NewReport("1.0")))

	var sarif sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sarif))
	assert.Equal(t, "2.1.0", sarif.Version)
	require.Len(t, sarif.Runs, 1)
	assert.Empty(t, sarif.Runs[0].Results)
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestSARIFWriter_WithEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFWriter{}).Write(&buf, sampleReport()))

	var sarif sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sarif))
	run := sarif.Runs[0]

	assert.Equal(t, "auditmark", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Results, 3)
	assert.Len(t, run.Tool.Driver.Rules, 3)

	high := run.Results[0]
	assert.Equal(t, "error", high.Level)
	assert.Equal(t, "Balance is updated after the external call.", high.Message.Text)
	require.Len(t, high.Locations, 2)
	loc := high.Locations[0].PhysicalLocation
	assert.Equal(t, "src/Vault.sol", loc.ArtifactLocation.URI)
	assert.Equal(t, "vault", loc.ArtifactLocation.URIBaseID)
	assert.Equal(t, 42, loc.Region.StartLine)
	assert.Equal(t, 45, loc.Region.EndLine)
	require.Len(t, high.Fixes, 1)

	assert.Equal(t, "note", run.Results[1].Level)
	assert.Equal(t, "none", run.Results[2].Level)
	assert.Equal(t, "Check fee rounding", run.Results[2].Message.Text)

	assert.Equal(t, "file:///work/vault/", run.OriginalURIBaseIDs["vault"].URI)
}

func TestGenerateRuleID_Stable(t *testing.T) {
	e := audit.Entry{Label: "Reentrancy", Details: audit.Details{Type: audit.FindingTypeTiming}}
	assert.Equal(t, generateRuleID(e), generateRuleID(e))

	other := e
	other.Label = "Overflow"
	assert.NotEqual(t, generateRuleID(e), generateRuleID(other))
	assert.Regexp(t, `^auditmark/finding/[0-9a-f]{8}$`, generateRuleID(e))
}

func TestEntryLevel(t *testing.T) {
	tests := []struct {
		sev  audit.Severity
		want string
	}{
		{audit.SeverityHigh, "error"},
		{audit.SeverityMedium, "warning"},
		{audit.SeverityLow, "note"},
		{audit.SeverityInformational, "note"},
		{"", "note"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entryLevel(audit.Entry{Details: audit.Details{Severity: tt.sev}}), string(tt.sev))
	}
	assert.Equal(t, "none", entryLevel(audit.Entry{EntryType: audit.EntryTypeNote}))
}
