package importer

import "strings"

// Job title keywords that mark someone as a founder.
var founderTitleKeywords = []string{
	"founder",
	"co-founder",
	"cofounder",
}

// Company name keywords that suggest an investment firm.
var investmentFirmKeywords = []string{
	"capital",
	"ventures",
	"fund",
}

// Company names and phrases that contain investment keywords but are not
// investment firms. Matching is substring based, so this list exists to
// patch over the resulting false positives. Not exhaustive: a company
// literally named "Fund Co" will still slip through.
var investorCompanyExclusions = []string{
	"capital one",
	"human capital",
	"working capital",
	"capital group",
	"capital iq",
	"capital markets",
	"venture for america",
	"joint venture",
	"fund accounting",
	"fund operations",
	"funded",
	"funding",
	"fundrise",
}

const (
	TagFounder  = "Founder"
	TagInvestor = "Investor"
)

// InferTags derives tags from a contact's job title and company using
// case-insensitive substring matching. Pure and deterministic; the returned
// slice never contains duplicates.
func InferTags(jobTitle, company *string) []string {
	var tags []string

	if containsAny(jobTitle, founderTitleKeywords) {
		tags = append(tags, TagFounder)
	}

	investor := containsAny(jobTitle, []string{"investor"})
	if !investor && containsAny(company, investmentFirmKeywords) && !containsAny(company, investorCompanyExclusions) {
		investor = true
	}
	if investor {
		tags = append(tags, TagInvestor)
	}

	return tags
}

func containsAny(text *string, keywords []string) bool {
	if text == nil {
		return false
	}
	lower := strings.ToLower(*text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
