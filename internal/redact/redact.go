package redact

import (
	"regexp"

	"github.com/dshills/auditmark/internal/audit"
)

const placeholder = "[REDACTED]"

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential|mnemonic)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`-----BEGIN\s+([A-Z]+\s+)?PRIVATE KEY-----`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Raw 32-byte hex keys, as used for Ethereum private keys.
	regexp.MustCompile(`\b0x[0-9a-fA-F]{64}\b`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	for _, pat := range secretPatterns {
		text = pat.ReplaceAllLiteralString(text, placeholder)
	}
	return text
}

// Entry returns a copy of e with secrets removed from its details and
// location descriptions.
func Entry(e audit.Entry) audit.Entry {
	out := e.Clone()
	out.Details.Description = Secrets(out.Details.Description)
	out.Details.Exploit = Secrets(out.Details.Exploit)
	out.Details.Recommendation = Secrets(out.Details.Recommendation)
	for i := range out.Locations {
		out.Locations[i].Description = Secrets(out.Locations[i].Description)
	}
	return out
}

// State returns a copy of s with every entry redacted.
func State(s audit.State) audit.State {
	s.TreeEntries = entries(s.TreeEntries)
	s.ResolvedEntries = entries(s.ResolvedEntries)
	return s
}

func entries(in []audit.Entry) []audit.Entry {
	if in == nil {
		return nil
	}
	out := make([]audit.Entry, len(in))
	for i, e := range in {
		out[i] = Entry(e)
	}
	return out
}
