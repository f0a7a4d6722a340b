package importer

import "strings"

// IdentityKeys holds the case-normalized values already present for an
// owner, used to detect duplicates during an import run. A contact
// contributes to both sets independently.
type IdentityKeys struct {
	Emails          map[string]struct{}
	LinkedInHandles map[string]struct{}
}

// NewIdentityKeys returns an empty key set ready for population.
func NewIdentityKeys() IdentityKeys {
	return IdentityKeys{
		Emails:          make(map[string]struct{}),
		LinkedInHandles: make(map[string]struct{}),
	}
}

// AddEmail records an email identity key.
func (k IdentityKeys) AddEmail(email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		k.Emails[email] = struct{}{}
	}
}

// AddLinkedInURL records the handle identity key derived from a profile URL.
// URLs that do not look like a profile link are ignored.
func (k IdentityKeys) AddLinkedInURL(url string) {
	if handle := LinkedInHandle(url); handle != "" {
		k.LinkedInHandles[handle] = struct{}{}
	}
}

const profilePathMarker = "linkedin.com/in/"

// LinkedInHandle extracts the lowercased profile handle from a LinkedIn URL.
// It tolerates a missing scheme, a www prefix, trailing path segments and
// query strings. Returns "" when the URL does not contain a profile path.
func LinkedInHandle(url string) string {
	lower := strings.ToLower(strings.TrimSpace(url))
	idx := strings.Index(lower, profilePathMarker)
	if idx < 0 {
		return ""
	}

	handle := lower[idx+len(profilePathMarker):]
	if cut := strings.IndexAny(handle, "/?#"); cut >= 0 {
		handle = handle[:cut]
	}
	return handle
}

// Partition splits candidates into records to insert and a count of records
// skipped as duplicates of existing contacts.
//
// A candidate is a duplicate when its lowercased email or its LinkedIn
// handle matches an existing key. A candidate carrying neither identity key
// is always kept: without a key there is no way to prove duplication.
func Partition(candidates []Candidate, keys IdentityKeys) ([]Candidate, int) {
	toInsert := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if isDuplicate(candidate, keys) {
			continue
		}
		toInsert = append(toInsert, candidate)
	}
	return toInsert, len(candidates) - len(toInsert)
}

func isDuplicate(candidate Candidate, keys IdentityKeys) bool {
	if candidate.Email != nil {
		if _, ok := keys.Emails[strings.ToLower(*candidate.Email)]; ok {
			return true
		}
	}
	if candidate.LinkedInURL != nil {
		if handle := LinkedInHandle(*candidate.LinkedInURL); handle != "" {
			if _, ok := keys.LinkedInHandles[handle]; ok {
				return true
			}
		}
	}
	return false
}
