package importer

import (
	"sort"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestInferTags(t *testing.T) {
	tests := map[string]struct {
		jobTitle *string
		company  *string
		expected []string
	}{
		"founder in title": {
			jobTitle: strPtr("Co-Founder & CEO"),
			company:  strPtr("Acme Inc"),
			expected: []string{"Founder"},
		},
		"cofounder without hyphen": {
			jobTitle: strPtr("Cofounder"),
			company:  nil,
			expected: []string{"Founder"},
		},
		"case insensitive founder": {
			jobTitle: strPtr("FOUNDER"),
			company:  nil,
			expected: []string{"Founder"},
		},
		"investment firm company": {
			jobTitle: strPtr("Partner"),
			company:  strPtr("Acme Ventures"),
			expected: []string{"Investor"},
		},
		"investor in title": {
			jobTitle: strPtr("Angel Investor"),
			company:  strPtr("Self Employed"),
			expected: []string{"Investor"},
		},
		"excluded company": {
			jobTitle: strPtr("Analyst"),
			company:  strPtr("Capital One"),
			expected: nil,
		},
		"excluded funding phrase": {
			jobTitle: strPtr("Manager"),
			company:  strPtr("Series A Funding Advisors"),
			expected: nil,
		},
		"founder at a fund": {
			jobTitle: strPtr("Founder & Managing Partner"),
			company:  strPtr("Northstar Capital"),
			expected: []string{"Founder", "Investor"},
		},
		"excluded company but investor title": {
			jobTitle: strPtr("Investor Relations"),
			company:  strPtr("Capital One"),
			expected: []string{"Investor"},
		},
		"no signals": {
			jobTitle: strPtr("Software Engineer"),
			company:  strPtr("Acme Inc"),
			expected: nil,
		},
		"nil inputs": {
			jobTitle: nil,
			company:  nil,
			expected: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tags := InferTags(tt.jobTitle, tt.company)
			if len(tags) != len(tt.expected) {
				t.Fatalf("expected tags %v, got %v", tt.expected, tags)
			}
			sort.Strings(tags)
			expected := append([]string(nil), tt.expected...)
			sort.Strings(expected)
			for i := range expected {
				if tags[i] != expected[i] {
					t.Fatalf("expected tags %v, got %v", tt.expected, tags)
				}
			}
		})
	}
}

func TestInferTags_NeverDuplicates(t *testing.T) {
	// Title and company both signal investor; the tag must appear once.
	tags := InferTags(strPtr("Investor"), strPtr("Acme Ventures"))
	if len(tags) != 1 || tags[0] != "Investor" {
		t.Fatalf("expected single Investor tag, got %v", tags)
	}
}
