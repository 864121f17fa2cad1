package utils

import (
	"fmt"
	"regexp"
)

// GetRegexpCaptureGroups matches search against r and returns the named
// capture groups. Unnamed groups are left out.
func GetRegexpCaptureGroups(r *regexp.Regexp, search string) (map[string]string, error) {
	matches := r.FindStringSubmatch(search)
	if matches == nil {
		return nil, fmt.Errorf("%q does not match regexp %q", search, r)
	}

	groups := make(map[string]string, len(matches))
	for i, name := range r.SubexpNames() {
		if i != 0 && name != "" {
			groups[name] = matches[i]
		}
	}

	return groups, nil
}
