package convert

import "strings"

// firstNonEmpty returns the first candidate that is not blank. All of the
// converter's "A else B else default" resolutions (seller display name, buyer
// name/email/phone, country code) go through this single policy so every call
// site degrades the same way.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
